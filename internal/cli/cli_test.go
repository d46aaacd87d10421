package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlockingReader_ReadLine(t *testing.T) {
	reader := NewNonBlockingReader(strings.NewReader("  hello world  \nsecond\n"))

	line, err := reader.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello world", line)

	line, err = reader.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", line)
}

func TestNonBlockingReader_Cancellation(t *testing.T) {
	// A pipe-like blocking reader: no data ever arrives.
	blocked := make(chan struct{})
	reader := NewNonBlockingReader(blockingReader{wait: blocked})
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := reader.ReadLine(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

type blockingReader struct {
	wait chan struct{}
}

func (r blockingReader) Read([]byte) (int, error) {
	<-r.wait
	return 0, nil
}

func TestPrompter_SelectInstitution(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "by number", input: "1\n", want: "chase"},
		{name: "by id", input: "wellsfargo\n", want: "wellsfargo"},
		{name: "id case insensitive", input: "BOFA\n", want: "bofa"},
		{name: "unknown", input: "gringotts\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			prompter := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := prompter.SelectInstitution(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Chase Bank")
		})
	}
}

func TestPrompter_ReadCredentials(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("alice\nhunter2\n\n"), &out)

	creds, err := prompter.ReadCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, "hunter2", creds.Password)
	assert.Empty(t, creds.AccountNumber)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		prompter := NewPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := prompter.Confirm(context.Background(), "Proceed?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), "done")
	assert.Contains(t, FormatError("broken"), "broken")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, RenderBox("Title", "body"), "body")
}
