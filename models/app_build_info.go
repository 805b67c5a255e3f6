package models

// notAvailable stands in for build metadata missing from linker flags.
const notAvailable = "N/A"

// AppBuildInfo is the version, date and commit stamped into a binary with
// -ldflags "-X main.buildVersion=...". Empty values become "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNotAvailable(version),
		date:    orNotAvailable(date),
		commit:  orNotAvailable(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }
func (a AppBuildInfo) BuildDate() string    { return a.date }
func (a AppBuildInfo) BuildCommit() string  { return a.commit }

// Stamped reports whether the binary was built with a version.
func (a AppBuildInfo) Stamped() bool {
	return a.version != notAvailable
}

// WithVersion returns a copy reporting version instead of the stamped one.
func (a AppBuildInfo) WithVersion(version string) AppBuildInfo {
	a.version = orNotAvailable(version)
	return a
}

// Response is the body of GET /api/version.
func (a AppBuildInfo) Response() VersionResponse {
	return VersionResponse{
		Version: a.version,
		Date:    a.date,
		Commit:  a.commit,
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
