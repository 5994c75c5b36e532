package logging

import (
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nicklany01/workout-scheduler/pkg"
)

const FieldService = "service"

type LoggerSetupParams struct {
	ServiceName      string
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

func Setup(params LoggerSetupParams) {
	logrus.SetFormatter(NewFormatter(params.LogFormatJSON))
	if params.ServiceName != "" {
		logrus.AddHook(ServiceHook{Service: params.ServiceName})
	}

	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Dsn:              params.SentryDSN,
			TracesSampleRate: 1.0,
			ServerName:       params.SentryServerName,
		})
		if err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		}

		hook := NewSentryHook([]logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		logrus.AddHook(hook)

		logrus.Infoln("Sentry set up successfully")
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Println("writing logs only to STDOUT")
		return
	}

	if params.LogToStdout {
		logrus.Println("writing logs to file and STDOUT")
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	// workout logs are small; a week of debug output fits in a few files
	rotated := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    20, // megabytes
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	}

	if params.LogToStdout {
		logrus.SetOutput(pkg.NewMultiWriter(os.Stdout, rotated))
	} else {
		logrus.SetOutput(rotated)
	}
}

// NewFormatter renders timestamps with milliseconds. JSON output uses
// the "ts" and "message" keys the log shipper indexes on.
func NewFormatter(json bool) logrus.Formatter {
	const layout = "2006-01-02T15:04:05.000Z07:00"
	if json {
		return &logrus.JSONFormatter{
			TimestampFormat: layout,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
				logrus.FieldKeyMsg:  "message",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: layout,
		DisableColors:   true,
	}
}

// ServiceHook adds the service name to every entry that does not carry one
// and moves the entry time to UTC.
type ServiceHook struct {
	Service string
}

func (h ServiceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h ServiceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data[FieldService]; !ok {
		entry.Data[FieldService] = h.Service
	}
	entry.Time = entry.Time.UTC()
	return nil
}

// GetLevel falls back to info for anything logrus does not know.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
