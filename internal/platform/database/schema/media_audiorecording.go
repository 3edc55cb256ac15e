// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// MediaAudioRecordingTable represents the 'media.audio_recording' table
type MediaAudioRecordingTable struct {
	Table           string
	ID              string
	TextID          string
	Title           LangColumns
	Description     LangColumns
	DurationSeconds string
	AudioURL        string
	CreatedAt       string
}

// MediaAudioRecording is the schema definition for media.audio_recording
var MediaAudioRecording = MediaAudioRecordingTable{
	Table:           "media.audio_recording",
	ID:              "id",
	TextID:          "text_id",
	Title:           langColumns("title"),
	Description:     langColumns("description"),
	DurationSeconds: "duration_seconds",
	AudioURL:        "audio_url",
	CreatedAt:       "created_at",
}

func (t MediaAudioRecordingTable) Columns() []string {
	columns := []string{t.ID, t.TextID}
	columns = append(columns, t.Title.List()...)
	columns = append(columns, t.Description.List()...)
	return append(columns, t.DurationSeconds, t.AudioURL, t.CreatedAt)
}
