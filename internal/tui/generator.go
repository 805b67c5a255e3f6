package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/secure-vault/internal/passgen"
)

type generatorModel struct {
	opts     passgen.Options
	password string
	// fromForm is set when the generator fills the form's password field.
	fromForm bool
}

func newGeneratorModel(fromForm bool) generatorModel {
	m := generatorModel{opts: passgen.DefaultOptions(), fromForm: fromForm}
	return m.regenerate()
}

func (m generatorModel) regenerate() generatorModel {
	pw, err := passgen.Generate(m.opts)
	if err != nil {
		m.password = ""
		return m
	}
	m.password = pw
	return m
}

func (m generatorModel) resize(delta int) generatorModel {
	m.opts.Length = min(max(m.opts.Length+delta, passgen.MinLength), passgen.MaxLength)
	return m.regenerate()
}

func (m generatorModel) View(status string) string {
	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.password) + "\n\n")
	b.WriteString(fmt.Sprintf("Length      %d (%d-%d)\n", m.opts.Length, passgen.MinLength, passgen.MaxLength))
	b.WriteString(fmt.Sprintf("%s digits\n", check(m.opts.Digits)))
	b.WriteString(fmt.Sprintf("%s symbols\n", check(m.opts.Symbols)))
	b.WriteString(fmt.Sprintf("%s exclude look-alikes\n", check(!m.opts.AllowLookalikes)))

	if status != "" {
		b.WriteString("\n" + statusStyle.Render(status) + "\n")
	}

	hotKeys := "←/→ length  d digits  s symbols  a look-alikes  r regenerate  c copy  esc back"
	if m.fromForm {
		hotKeys = "enter use  " + hotKeys
	}
	return renderPage("secure-vault · password generator", b.String(), hotKeys)
}
