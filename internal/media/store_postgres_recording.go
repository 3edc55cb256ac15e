// Copyright (c) 2026 Lotsawa. All rights reserved.

package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lotsawa/canon/internal/platform/database/schema"
	"github.com/lotsawa/canon/internal/platform/dberr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/pkg/pagination"
)

// # Audio

func audioColumns() string {
	return strings.Join(schema.MediaAudioRecording.Columns(), ", ")
}

func scanAudio(row pgx.Row) (*AudioRecording, error) {
	recording := &AudioRecording{}
	var title, description lang.Row

	targets := []any{&recording.ID, &recording.TextID}
	targets = append(targets, title.Targets()...)
	targets = append(targets, description.Targets()...)
	targets = append(targets, &recording.DurationSeconds, &recording.AudioURL, &recording.CreatedAt)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	recording.Title = title.Text()
	recording.Description = description.Text()
	return recording, nil
}

func (repository *PostgresRepository) ListAudio(context context.Context, filter AudioFilter, params pagination.Params) ([]*AudioRecording, int, error) {
	params = params.Normalize()
	where := fmt.Sprintf("($1::text IS NULL OR %s = $1)", schema.MediaAudioRecording.TextID)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.MediaAudioRecording.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, filter.TextID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Audio recording")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		audioColumns(), schema.MediaAudioRecording.Table, where, schema.MediaAudioRecording.ID,
	)

	rows, err := repository.pool.Query(context, listQuery, filter.TextID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Audio recording")
	}

	recordings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*AudioRecording, error) { return scanAudio(row) })
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Audio recording")
	}
	return nonNil(recordings), total, nil
}

func (repository *PostgresRepository) FindAudio(context context.Context, id string) (*AudioRecording, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		audioColumns(), schema.MediaAudioRecording.Table, schema.MediaAudioRecording.ID,
	)

	recording, err := scanAudio(repository.pool.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Audio recording")
	}
	return recording, nil
}

func (repository *PostgresRepository) CreateAudio(context context.Context, recording *AudioRecording) error {
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING %s
	`,
		schema.MediaAudioRecording.Table, audioColumns(), schema.MediaAudioRecording.CreatedAt,
	)

	args := []any{recording.ID, recording.TextID}
	args = append(args, recording.Title.Args()...)
	args = append(args, recording.Description.Args()...)
	args = append(args, recording.DurationSeconds, recording.AudioURL)

	err := repository.pool.QueryRow(context, insertQuery, args...).Scan(&recording.CreatedAt)
	return dberr.Wrap(err, "Audio recording")
}

func (repository *PostgresRepository) DeleteAudio(context context.Context, id string) error {
	return repository.deleteByID(context, schema.MediaAudioRecording.Table, schema.MediaAudioRecording.ID, id, "Audio recording")
}

// # Video

func videoColumns() string {
	return strings.Join(schema.MediaVideo.Columns(), ", ")
}

func scanVideo(row pgx.Row) (*Video, error) {
	video := &Video{}
	var title, description lang.Row

	targets := []any{&video.ID}
	targets = append(targets, title.Targets()...)
	targets = append(targets, description.Targets()...)
	targets = append(targets, &video.DurationSeconds, &video.VideoURL, &video.CreatedAt)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	video.Title = title.Text()
	video.Description = description.Text()
	return video, nil
}

func (repository *PostgresRepository) ListVideos(context context.Context, params pagination.Params) ([]*Video, int, error) {
	params = params.Normalize()

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.MediaVideo.Table)
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		videoColumns(), schema.MediaVideo.Table, schema.MediaVideo.ID,
	)

	rows, err := repository.pool.Query(context, listQuery, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}

	videos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Video, error) { return scanVideo(row) })
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}
	return nonNil(videos), total, nil
}

func (repository *PostgresRepository) FindVideo(context context.Context, id string) (*Video, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, videoColumns(), schema.MediaVideo.Table, schema.MediaVideo.ID)

	video, err := scanVideo(repository.pool.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Video")
	}
	return video, nil
}

func (repository *PostgresRepository) CreateVideo(context context.Context, video *Video) error {
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING %s
	`,
		schema.MediaVideo.Table, videoColumns(), schema.MediaVideo.CreatedAt,
	)

	args := []any{video.ID}
	args = append(args, video.Title.Args()...)
	args = append(args, video.Description.Args()...)
	args = append(args, video.DurationSeconds, video.VideoURL)

	err := repository.pool.QueryRow(context, insertQuery, args...).Scan(&video.CreatedAt)
	return dberr.Wrap(err, "Video")
}

func (repository *PostgresRepository) DeleteVideo(context context.Context, id string) error {
	return repository.deleteByID(context, schema.MediaVideo.Table, schema.MediaVideo.ID, id, "Video")
}
