package logging

import (
	"os"
	"strings"
	"time"

	"github.com/2beens/gymsheets/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB   = 50
	sentryFlushTimeout = 5 * time.Second
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. Call the returned flush
// before exiting so buffered sentry events are sent.
func Setup(params LoggerSetupParams) (flush func()) {
	flush = func() {}

	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
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
		} else {
			logrus.AddHook(NewSentryHook([]logrus.Level{
				logrus.PanicLevel,
				logrus.FatalLevel,
				logrus.ErrorLevel,
			}))
			flush = func() {
				ok := sentry.Flush(sentryFlushTimeout)
				logrus.Debugf("sentry flush ok: %t", ok)
			}
			logrus.Infoln("Sentry set up successfully")
		}
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Println("writing logs only to STDOUT")
		return flush
	}

	fileWriter := newRotatingWriter(params.LogFileName)
	if params.LogToStdout {
		logrus.Println("writing logs to file and STDOUT")
		logrus.SetOutput(pkg.NewCombinedWriter(os.Stdout, fileWriter))
	} else {
		logrus.SetOutput(fileWriter)
	}

	return flush
}

func newRotatingWriter(fileName string) *lumberjack.Logger {
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	if err := pkg.EnsureParentDir(fileName); err != nil {
		logrus.Errorf("create logs dir for [%s]: %s", fileName, err)
	}

	// no MaxBackups/MaxAge, rotated files are never removed
	return &lumberjack.Logger{
		Filename: fileName,
		MaxSize:  logFileMaxSizeMB,
		Compress: true,
	}
}

// GetLevel parses a logrus level name, case insensitive. Unknown names
// give TraceLevel.
func GetLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.TraceLevel
	}
	return lvl
}
