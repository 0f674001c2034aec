package domain

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseCaptions(t *testing.T) {
	markup := "1\n00:00:00,000 --> 00:00:02,500\nHello there.\n\n" +
		"2\n00:00:02,500 --> 00:00:05,000\nWelcome to your plan.\nLet's get started.\n"

	captions, err := ParseCaptions(markup)
	require.NoError(t, err)
	require.Len(t, captions, 2)

	assert.Equal(t, 0, captions[0].StartFrame)
	assert.Equal(t, 75, captions[0].EndFrame)
	assert.Equal(t, "Hello there.", captions[0].Text)

	assert.Equal(t, 75, captions[1].StartFrame)
	assert.Equal(t, 150, captions[1].EndFrame)
	assert.Equal(t, "Welcome to your plan. Let's get started.", captions[1].Text)
}

func TestParseCaptions_DotMillisAndNoCueNumbers(t *testing.T) {
	markup := "00:00:01.000 --> 00:00:01.500\nShort cue."

	captions, err := ParseCaptions(markup)
	require.NoError(t, err)
	require.Len(t, captions, 1)
	assert.Equal(t, 30, captions[0].StartFrame)
	assert.Equal(t, 45, captions[0].EndFrame)
}

func TestParseCaptions_CRLFAndBlankBlocks(t *testing.T) {
	markup := "1\r\n00:00:00,000 --> 00:00:01,000\r\nFirst.\r\n\r\n\r\n\r\n" +
		"2\r\n00:00:01,000 --> 00:00:02,000\r\nSecond.\r\n"

	captions, err := ParseCaptions(markup)
	require.NoError(t, err)
	require.Len(t, captions, 2)
	assert.Equal(t, "First.", captions[0].Text)
	assert.Equal(t, "Second.", captions[1].Text)
}

func TestParseCaptions_MalformedBlocks(t *testing.T) {
	_, err := ParseCaptions("1\nnot a timing line\nSome text.")
	require.Error(t, err)

	_, err = ParseCaptions("1\n00:00:00,000 --> 00:00:01,000")
	require.Error(t, err)
}

func TestTimestampToFrame_HourBoundary(t *testing.T) {
	captions, err := ParseCaptions("01:00:00,000 --> 01:00:01,000\nCue.")
	require.NoError(t, err)
	require.Len(t, captions, 1)
	assert.Equal(t, 3600*CaptionFrameRate, captions[0].StartFrame)
}
