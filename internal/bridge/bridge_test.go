package bridge

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestGreet(t *testing.T) {
	b := New()
	resp := b.Handle(Request{ID: 1, Method: MethodGreet, Params: params(t, "Alice")})
	assert.Equal(t, int64(1), resp.ID)
	assert.Empty(t, resp.Error)
	assert.Equal(t, "Hello Alice from the desktop shell!", resp.Result)
}

func TestOpenExternalValidatesURL(t *testing.T) {
	var opened string
	b := New(WithOpener(func(rawURL string) error {
		opened = rawURL
		return nil
	}))

	resp := b.Handle(Request{ID: 2, Method: MethodOpenExternal, Params: params(t, "https://example.com")})
	assert.Empty(t, resp.Error)
	assert.Equal(t, "https://example.com", opened)

	resp = b.Handle(Request{ID: 3, Method: MethodOpenExternal, Params: params(t, "file:///etc/passwd")})
	assert.NotEmpty(t, resp.Error)

	resp = b.Handle(Request{ID: 4, Method: MethodOpenExternal, Params: params(t, 42)})
	assert.NotEmpty(t, resp.Error)
}

func TestShowDialogUsesPrompter(t *testing.T) {
	b := New(WithPrompter(func(message string) (DialogResult, error) {
		assert.Equal(t, "proceed?", message)
		return DialogResult{Response: 1}, nil
	}))
	resp := b.Handle(Request{ID: 5, Method: MethodShowDialog, Params: params(t, "proceed?")})
	require.Empty(t, resp.Error)
	assert.Equal(t, DialogResult{Response: 1}, resp.Result)
}

func TestShowDialogDefaultsToOK(t *testing.T) {
	b := New()
	resp := b.Handle(Request{ID: 6, Method: MethodShowDialog, Params: params(t, "hi")})
	require.Empty(t, resp.Error)
	assert.Equal(t, DialogResult{Response: 0}, resp.Result)
}

func TestUnknownMethod(t *testing.T) {
	b := New()
	resp := b.Handle(Request{ID: 7, Method: "reboot", Params: params(t, nil)})
	assert.Equal(t, "unknown method: reboot", resp.Error)
}

func TestPrompterFailureIsReported(t *testing.T) {
	b := New(WithPrompter(func(string) (DialogResult, error) {
		return DialogResult{}, errors.New("no display")
	}))
	resp := b.Handle(Request{ID: 8, Method: MethodShowDialog, Params: params(t, "hi")})
	assert.Equal(t, "no display", resp.Error)
}

func TestServeProcessesFrames(t *testing.T) {
	b := New()
	in := strings.Join([]string{
		`{"id":1,"method":"greet","params":"Bob"}`,
		`not json`,
		`{"id":2,"method":"show-dialog","params":"bye"}`,
		``,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, b.Serve(strings.NewReader(in), &out))

	var responses []Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	require.Len(t, responses, 3)
	assert.Equal(t, "Hello Bob from the desktop shell!", responses[0].Result)
	assert.Equal(t, "malformed request frame", responses[1].Error)
	assert.Empty(t, responses[2].Error)
}
