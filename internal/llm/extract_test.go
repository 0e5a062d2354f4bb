package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	t.Run("strips json fences", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, CleanJSON("```json\n{\"a\":1}\n```"))
	})

	t.Run("strips bare fences", func(t *testing.T) {
		assert.Equal(t, `[1,2]`, CleanJSON("```\n[1,2]\n```"))
	})

	t.Run("leaves clean input alone", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, CleanJSON(`{"a":1}`))
	})
}

func TestDecodeItems(t *testing.T) {
	type item struct {
		Title string `json:"title"`
	}

	t.Run("bare array", func(t *testing.T) {
		var items []item
		require.NoError(t, DecodeItems(`[{"title":"a"},{"title":"b"}]`, &items))
		assert.Len(t, items, 2)
	})

	t.Run("news wrapper", func(t *testing.T) {
		var items []item
		require.NoError(t, DecodeItems(`{"news":[{"title":"a"}]}`, &items))
		require.Len(t, items, 1)
		assert.Equal(t, "a", items[0].Title)
	})

	t.Run("items wrapper", func(t *testing.T) {
		var items []item
		require.NoError(t, DecodeItems(`{"items":[{"title":"a"}]}`, &items))
		assert.Len(t, items, 1)
	})

	t.Run("fenced array", func(t *testing.T) {
		var items []item
		require.NoError(t, DecodeItems("```json\n[{\"title\":\"a\"}]\n```", &items))
		assert.Len(t, items, 1)
	})

	t.Run("unrecognized wrapper key fails", func(t *testing.T) {
		var items []item
		assert.Error(t, DecodeItems(`{"stories":[{"title":"a"}]}`, &items))
	})

	t.Run("prose fails", func(t *testing.T) {
		var items []item
		assert.Error(t, DecodeItems("Here are the trends you asked for!", &items))
	})
}

func TestDecodeObject(t *testing.T) {
	t.Run("fenced object", func(t *testing.T) {
		var v struct {
			Summary string `json:"summary"`
		}
		require.NoError(t, DecodeObject("```json\n{\"summary\":\"ok\"}\n```", &v))
		assert.Equal(t, "ok", v.Summary)
	})

	t.Run("malformed input fails", func(t *testing.T) {
		var v map[string]any
		assert.Error(t, DecodeObject(`{"summary": `, &v))
	})
}
