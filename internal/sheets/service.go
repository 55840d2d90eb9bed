package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	EnvClientEmail   = "GOOGLE_CLIENT_EMAIL"
	EnvPrivateKey    = "GOOGLE_PRIVATE_KEY"
	EnvSpreadsheetID = "SHEET_ID"
)

var ErrMissingCredentials = errors.New("missing GOOGLE_CLIENT_EMAIL or GOOGLE_PRIVATE_KEY")

// Credentials of the google service account used to write to the spreadsheet
type Credentials struct {
	ClientEmail string
	PrivateKey  string
}

func CredentialsFromEnv() Credentials {
	return Credentials{
		ClientEmail: os.Getenv(EnvClientEmail),
		// keys stored in env vars usually carry escaped new lines
		PrivateKey: strings.ReplaceAll(os.Getenv(EnvPrivateKey), `\n`, "\n"),
	}
}

// LazyService builds the sheets API client on first use and then shares it
// between all requests. The client is never mutated after construction.
type LazyService struct {
	once    sync.Once
	build   func(ctx context.Context) (*sheetsapi.Service, error)
	service *sheetsapi.Service
	err     error
}

func NewLazyService(creds Credentials) *LazyService {
	return &LazyService{
		build: func(ctx context.Context) (*sheetsapi.Service, error) {
			if creds.ClientEmail == "" || creds.PrivateKey == "" {
				return nil, ErrMissingCredentials
			}

			jwtConfig := &jwt.Config{
				Email:      creds.ClientEmail,
				PrivateKey: []byte(creds.PrivateKey),
				Scopes:     []string{sheetsapi.SpreadsheetsScope},
				TokenURL:   google.JWTTokenURL,
			}

			// both token and sheets API requests go through the traced transport
			tracedHttpClient := &http.Client{
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			}
			ctx = context.WithValue(ctx, oauth2.HTTPClient, tracedHttpClient)

			return sheetsapi.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
		},
	}
}

// NewLazyServiceWithOptions builds the client with explicit client options,
// e.g. a custom endpoint and http client
func NewLazyServiceWithOptions(opts ...option.ClientOption) *LazyService {
	return &LazyService{
		build: func(ctx context.Context) (*sheetsapi.Service, error) {
			return sheetsapi.NewService(ctx, opts...)
		},
	}
}

func (s *LazyService) Get() (*sheetsapi.Service, error) {
	s.once.Do(func() {
		// not bound to any request, the client outlives them all
		s.service, s.err = s.build(context.Background())
		if s.err != nil {
			s.err = fmt.Errorf("create sheets client: %w", s.err)
			log.Errorf("sheets client: %s", s.err)
			return
		}
		log.Debugln("sheets client created")
	})
	return s.service, s.err
}
