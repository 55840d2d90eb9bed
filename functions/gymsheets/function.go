// Package gymsheets exposes the log endpoints as Google Cloud Functions.
package gymsheets

import (
	"net/http"
	"os"
	"sync"

	"github.com/2beens/gymsheets/internal/gymlog"
	"github.com/2beens/gymsheets/internal/logging"
	"github.com/2beens/gymsheets/internal/middleware"
	"github.com/2beens/gymsheets/internal/sheets"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

const defaultLogLevel = "info"

var (
	handler     *gymlog.Handler
	handlerOnce sync.Once

	// replaced in tests
	newService = func() *gymlog.Service {
		appender := sheets.NewAppender(
			sheets.NewLazyService(sheets.CredentialsFromEnv()),
			sheets.AppenderParams{
				SpreadsheetID:     os.Getenv(sheets.EnvSpreadsheetID),
				VerifySheetTitles: true,
			},
		)
		return gymlog.NewService(appender, nil)
	}
)

func init() {
	functions.HTTP("LogWorkout", LogWorkout)
	functions.HTTP("LogWeight", LogWeight)
	functions.HTTP("LogEffort", LogEffort)
}

func initHandler() *gymlog.Handler {
	handlerOnce.Do(func() {
		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			logLevel = defaultLogLevel
		}
		sentryDSN := os.Getenv("SENTRY_DSN")
		logging.Setup(logging.LoggerSetupParams{
			LogToStdout:      true,
			LogLevel:         logLevel,
			LogFormatJSON:    true,
			Environment:      "production",
			SentryEnabled:    sentryDSN != "",
			SentryDSN:        sentryDSN,
			SentryServerName: "gymsheets-functions",
		})

		handler = gymlog.NewHandler(newService())
	})
	return handler
}

// withMiddleware applies the same CORS, recovery and method rules as the service router
func withMiddleware(next http.HandlerFunc) http.Handler {
	return middleware.Cors()(
		middleware.PanicRecovery(nil)(
			middleware.AllowMethods(http.MethodPost)(next),
		),
	)
}

func LogWorkout(w http.ResponseWriter, r *http.Request) {
	withMiddleware(initHandler().HandleLogWorkout).ServeHTTP(w, r)
}

func LogWeight(w http.ResponseWriter, r *http.Request) {
	withMiddleware(initHandler().HandleLogWeight).ServeHTTP(w, r)
}

func LogEffort(w http.ResponseWriter, r *http.Request) {
	withMiddleware(initHandler().HandleLogEffort).ServeHTTP(w, r)
}
