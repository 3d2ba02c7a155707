package logsvc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/trezcool/gradebook/core"
)

// ZapLogger writes structured logs; used in debug mode.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ core.Logger = (*ZapLogger)(nil)

func NewZapLogger(conf *core.Config) (*ZapLogger, error) {
	var (
		zl  *zap.Logger
		err error
	)
	if conf.Debug {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return NewZapLoggerFrom(zl.With(zap.String("app", conf.AppName), zap.String("env", conf.Env))), nil
}

func NewZapLoggerFrom(zl *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: zl.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// fields turns logger args into zap key/value pairs.
func fields(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, len(args)*2)
	var extra int
	for _, arg := range args {
		switch val := arg.(type) {
		case nil:
		case error:
			kvs = append(kvs, zap.Error(val))
		case map[string]interface{}:
			for k, v := range val {
				kvs = append(kvs, zap.Any(k, v))
			}
		default:
			extra++
			kvs = append(kvs, zap.Any(fmt.Sprintf("arg%d", extra), val))
		}
	}
	return kvs
}

func (l ZapLogger) Sync() error { return l.sugar.Sync() }

func (l ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugw(msg, fields(args)...) }

func (l ZapLogger) Info(msg string, args ...interface{}) { l.sugar.Infow(msg, fields(args)...) }

func (l ZapLogger) Warn(msg string, args ...interface{}) { l.sugar.Warnw(msg, fields(args)...) }

func (l ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorw(msg, fields(args)...) }

func (l ZapLogger) Fatal(msg string, args ...interface{}) { l.sugar.Fatalw(msg, fields(args)...) }
