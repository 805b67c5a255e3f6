// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
	sq "github.com/Masterminds/squirrel"
)

// vaultRepository is the SQL implementation of [VaultRepository] over the
// "vault_items" table. Cipher strings are stored verbatim.
type vaultRepository struct {
	*DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by db.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

// List returns every record of userID, newest first.
func (v *vaultRepository) List(ctx context.Context, userID int64) ([]models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := v.builder().
		Select(vaultColumns...).
		From(vaultTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := v.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.List").
			Int64("user_id", userID).
			Msg("failed to execute query for listing vault items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.VaultRecord, 0, 32)
	for rows.Next() {
		rec, scanErr := scanVaultRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "vaultRepository.List").
				Int64("user_id", userID).
				Msg("failed to scan vault item row")
			return nil, scanErr
		}
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "vaultRepository.List").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// Create inserts one record owned by record.UserID. Id and timestamps of
// the input are ignored.
func (v *vaultRepository) Create(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	insert, err := v.insertBuilder(record, now)
	if err != nil {
		return models.VaultRecord{}, err
	}

	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	err = v.withRetry(ctx, func() error {
		return v.QueryRowContext(ctx, query, args...).Scan(&id)
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Create").
			Int64("user_id", record.UserID).
			Msg("failed to insert vault item")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	record.ID = id
	record.CreatedAt = &now
	record.UpdatedAt = &now
	if record.Tags == nil {
		record.Tags = []models.CipherString{}
	}
	return record, nil
}

// CreateMany inserts records for userID in one transaction and returns how
// many were stored. Ownership fields of the input are overwritten.
func (v *vaultRepository) CreateMany(ctx context.Context, userID int64, records []models.VaultRecord) (int, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	queries := make([]string, 0, len(records))
	argsList := make([][]any, 0, len(records))
	for _, rec := range records {
		rec.UserID = userID
		insert, err := v.insertBuilder(rec, now)
		if err != nil {
			return 0, err
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		queries = append(queries, query)
		argsList = append(argsList, args)
	}

	err := v.withRetry(ctx, func() error {
		return v.inTx(ctx, func(tx *sql.Tx) error {
			for i := range queries {
				if _, err := tx.ExecContext(ctx, queries[i], argsList[i]...); err != nil {
					return fmt.Errorf("%w: item %d: %w", ErrExecutingStatement, i, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.CreateMany").
			Int64("user_id", userID).
			Int("items", len(records)).
			Msg("failed to import vault items")
		return 0, err
	}

	return len(records), nil
}

// Update writes the non-nil fields of update to the record identified by
// update.ID and update.UserID and returns the stored result.
func (v *vaultRepository) Update(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	builder := v.builder().
		Update(vaultTable).
		Set("updated_at", time.Now().UTC())

	fields := []struct {
		column string
		value  *models.CipherString
	}{
		{"title", update.Title},
		{"username", update.Username},
		{"password", update.Password},
		{"url", update.URL},
		{"notes", update.Notes},
	}
	for _, f := range fields {
		if f.value != nil {
			builder = builder.Set(f.column, *f.value)
		}
	}
	if update.Tags != nil {
		tags, err := encodeTags(*update.Tags)
		if err != nil {
			return models.VaultRecord{}, err
		}
		builder = builder.Set("tags", tags)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID}).
		Suffix("RETURNING " + strings.Join(vaultColumns, ", ")).
		ToSql()
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanVaultRecord(v.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultRecord{}, ErrVaultItemNotFound
		}
		log.Err(err).
			Str("func", "vaultRepository.Update").
			Int64("user_id", update.UserID).
			Int64("id", update.ID).
			Msg("failed to update vault item")
		return models.VaultRecord{}, err
	}

	return rec, nil
}

// Delete removes one record of userID.
func (v *vaultRepository) Delete(ctx context.Context, userID, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := v.builder().
		Delete(vaultTable).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := v.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Delete").
			Int64("user_id", userID).
			Int64("id", id).
			Msg("failed to delete vault item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVaultItemNotFound
	}

	return nil
}

func (v *vaultRepository) insertBuilder(rec models.VaultRecord, now time.Time) (sq.InsertBuilder, error) {
	tags, err := encodeTags(rec.Tags)
	if err != nil {
		return sq.InsertBuilder{}, err
	}

	return v.builder().
		Insert(vaultTable).
		Columns(vaultInsertColumns...).
		Values(rec.UserID, rec.Title, rec.Username, rec.Password, rec.URL, rec.Notes, tags, now, now), nil
}

func (v *vaultRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := v.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
