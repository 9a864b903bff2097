package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/scheduling"
)

func TestPreviewCommandOutput(t *testing.T) {
	in, err := readScheduleInput(strings.NewReader(`{
		"name": "Fim de semana",
		"playlist_id": 1,
		"days_of_week": [0, 6],
		"start_time": "22:00",
		"end_time": "02:00"
	}`), "-")
	require.NoError(t, err)

	draft, err := scheduling.NewPipeline(nil, nil).Prepare(0, in, nil)
	require.NoError(t, err)
	// Friday to Sunday
	days, err := scheduling.Preview(draft, model.NewDate(2025, 3, 7), 3)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writePreview(&out, draft, days))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Fim de semana  (Sempre, 22:00–02:00)", lines[0])
	assert.Equal(t, "2025-03-07  Friday     -", lines[1])
	assert.Equal(t, "2025-03-08  Saturday   22:00–02:00", lines[2])
	assert.Equal(t, "2025-03-09  Sunday     22:00–02:00", lines[3])
}

func TestReadScheduleInputRejectsGarbage(t *testing.T) {
	_, err := readScheduleInput(strings.NewReader("not json"), "-")
	assert.Error(t, err)
}
