package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trezcool/gradebook/core"
)

func TestRollbarLogger_prepare(t *testing.T) {
	l := NewRollbarLogger(log.New(&bytes.Buffer{}, "", 0), &core.Config{Env: "TEST", TestMode: true})
	err := errors.New("boom")

	tests := []struct {
		name string
		args []interface{}
		want []interface{}
	}{
		{name: "message only", want: []interface{}{"msg"}},
		{name: "error", args: []interface{}{err}, want: []interface{}{"msg", err}},
		{
			name: "maps are merged",
			args: []interface{}{map[string]interface{}{"course": "1ro 1ra"}, nil, map[string]interface{}{"student": "Ana"}},
			want: []interface{}{"msg", map[string]interface{}{"course": "1ro 1ra", "student": "Ana"}},
		},
		{
			name: "printable value",
			args: []interface{}{err, 42},
			want: []interface{}{"msg", err, map[string]interface{}{"detail": 42}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.prepare("msg", tt.args))
		})
	}
}

func TestRollbarLogger_print(t *testing.T) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", TestMode: true})
	l.Info("course added", map[string]interface{}{"course": "1ro 1ra"})
	assert.Equal(t, "course added\nmap[course:1ro 1ra]\n", buf.String())
}

func TestZapLogger(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)
	l := NewZapLoggerFrom(zap.New(observed))

	l.Debug("score set", map[string]interface{}{"course": "1ro 1ra", "period": 1})
	l.Warn("grade.Service.Load: unreadable slot", errors.New("boom"), "extra")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "score set", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"course": "1ro 1ra", "period": int64(1)}, entries[0].ContextMap())
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, map[string]interface{}{"error": "boom", "arg1": "extra"}, entries[1].ContextMap())
}
