package authservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/gala-night/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(t *testing.T, repo authdb.Repository, provider authjwt.Provider, cfg Config) Service {
	t.Helper()
	if cfg.StaticEmail == "" {
		cfg.StaticEmail = "admin@gala.local"
	}
	cfg.BcryptCost = bcrypt.MinCost
	svc, err := NewService(
		repo,
		provider,
		cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
	require.NoError(t, err)
	return svc
}

func TestService_Login(t *testing.T) {
	accountHash := mustHash(t, "correct horse")

	tests := []struct {
		name       string
		cfg        Config
		setupRepo  func(*FakeAdminRepo)
		email      string
		password   string
		wantErr    error
		wantSource authdomain.Source
	}{
		{
			name:       "static admin with configured hash",
			cfg:        Config{StaticPasswordHash: mustHash(t, "s3cret-pass")},
			email:      "Admin@Gala.local ",
			password:   "s3cret-pass",
			wantSource: authdomain.SourceStatic,
		},
		{
			name:       "static admin with fallback password",
			cfg:        Config{FallbackPassword: "gala-admin"},
			email:      "admin@gala.local",
			password:   "gala-admin",
			wantSource: authdomain.SourceStatic,
		},
		{
			name:     "static admin wrong password",
			cfg:      Config{FallbackPassword: "gala-admin"},
			email:    "admin@gala.local",
			password: "nope",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name: "signed-up account",
			setupRepo: func(f *FakeAdminRepo) {
				f.GetByEmailFunc = func(ctx context.Context, db bun.IDB, email string) (*authdb.Admin, error) {
					return &authdb.Admin{ID: 4, Email: email, PasswordHash: accountHash}, nil
				}
			},
			email:      "chair@gala.org",
			password:   "correct horse",
			wantSource: authdomain.SourceAccount,
		},
		{
			name: "account wrong password",
			setupRepo: func(f *FakeAdminRepo) {
				f.GetByEmailFunc = func(ctx context.Context, db bun.IDB, email string) (*authdb.Admin, error) {
					return &authdb.Admin{ID: 4, Email: email, PasswordHash: accountHash}, nil
				}
			},
			email:    "chair@gala.org",
			password: "battery staple",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "stranger@gala.org",
			password: "whatever1",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "empty password",
			email:    "admin@gala.local",
			password: "",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeAdminRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			provider := &FakeJWTProvider{}
			svc := newTestService(t, repo, provider, tt.cfg)

			resp, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotContains(t, provider.Trace(), "GenerateToken")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "fake-token", resp.Token)
			assert.Equal(t, tt.wantSource, resp.Claims.Source)
			assert.Equal(t, authdomain.NormalizeEmail(tt.email), resp.Claims.Email)
			assert.WithinDuration(t, time.Now().Add(DefaultSessionTTL), resp.Claims.ExpiresAt, time.Minute)
		})
	}
}

func TestService_Login_RepoError(t *testing.T) {
	repo := NewFakeAdminRepo()
	repo.GetByEmailFunc = func(ctx context.Context, db bun.IDB, email string) (*authdb.Admin, error) {
		return nil, errors.New("db down")
	}
	svc := newTestService(t, repo, &FakeJWTProvider{}, Config{})

	_, err := svc.Login(context.Background(), "chair@gala.org", "password1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ValidateSession(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		validate  func(string) (*authdomain.Claims, error)
		setupRepo func(*FakeAdminRepo)
		wantErr   error
	}{
		{
			name:    "missing token",
			token:   "",
			wantErr: ErrMissingToken,
		},
		{
			name:  "expired",
			token: "t",
			validate: func(string) (*authdomain.Claims, error) {
				return nil, authjwt.ErrExpiredToken
			},
			wantErr: ErrExpiredToken,
		},
		{
			name:  "bad signature",
			token: "t",
			validate: func(string) (*authdomain.Claims, error) {
				return nil, authjwt.ErrSignatureMismatch
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:  "static session",
			token: "t",
		},
		{
			name:  "deleted account",
			token: "t",
			validate: func(string) (*authdomain.Claims, error) {
				return &authdomain.Claims{AdminID: 9, Email: "gone@gala.org", Source: authdomain.SourceAccount}, nil
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:  "live account",
			token: "t",
			validate: func(string) (*authdomain.Claims, error) {
				return &authdomain.Claims{AdminID: 9, Email: "chair@gala.org", Source: authdomain.SourceAccount}, nil
			},
			setupRepo: func(f *FakeAdminRepo) {
				f.GetByEmailFunc = func(ctx context.Context, db bun.IDB, email string) (*authdb.Admin, error) {
					return &authdb.Admin{ID: 9, Email: email}, nil
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeAdminRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			svc := newTestService(t, repo, &FakeJWTProvider{ValidateTokenFunc: tt.validate}, Config{})

			claims, err := svc.ValidateSession(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, claims.Email)
		})
	}
}

func TestService_CreateAdmin(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		setupRepo func(*FakeAdminRepo)
		wantErr   error
		verify    func(t *testing.T, repo *FakeAdminRepo, info *AdminInfo)
	}{
		{
			name:     "creates with hashed password",
			email:    " Treasurer@Gala.org",
			password: "long-enough",
			setupRepo: func(f *FakeAdminRepo) {
				f.CreateFunc = func(ctx context.Context, db bun.IDB, admin *authdb.Admin) error {
					if admin.PasswordHash == "long-enough" {
						return errors.New("stored plaintext")
					}
					if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("long-enough")) != nil {
						return errors.New("hash does not match")
					}
					admin.ID = 12
					return nil
				}
			},
			verify: func(t *testing.T, repo *FakeAdminRepo, info *AdminInfo) {
				assert.Equal(t, int64(12), info.ID)
				assert.Equal(t, "treasurer@gala.org", info.Email)
				assert.Equal(t, authdomain.SourceAccount, info.Source)
			},
		},
		{
			name:     "weak password",
			email:    "x@gala.org",
			password: "short",
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "static email is taken",
			email:    "admin@gala.local",
			password: "long-enough",
			wantErr:  ErrDuplicateEmail,
		},
		{
			name:     "duplicate account",
			email:    "dup@gala.org",
			password: "long-enough",
			setupRepo: func(f *FakeAdminRepo) {
				f.CreateFunc = func(ctx context.Context, db bun.IDB, admin *authdb.Admin) error {
					return authdb.ErrDuplicateEmail
				}
			},
			wantErr: ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeAdminRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			svc := newTestService(t, repo, &FakeJWTProvider{}, Config{})

			info, err := svc.CreateAdmin(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.verify(t, repo, info)
		})
	}
}

func TestService_ListAdmins(t *testing.T) {
	repo := NewFakeAdminRepo()
	repo.ListFunc = func(ctx context.Context, db bun.IDB) ([]authdb.Admin, error) {
		return []authdb.Admin{{ID: 2, Email: "a@gala.org"}, {ID: 3, Email: "b@gala.org"}}, nil
	}
	svc := newTestService(t, repo, &FakeJWTProvider{}, Config{})

	admins, err := svc.ListAdmins(context.Background())
	require.NoError(t, err)
	require.Len(t, admins, 3)
	assert.Equal(t, authdomain.SourceStatic, admins[0].Source)
	assert.Equal(t, "a@gala.org", admins[1].Email)
}

func TestService_DeleteAdmin(t *testing.T) {
	tests := []struct {
		name      string
		requester *authdomain.Claims
		id        int64
		setupRepo func(*FakeAdminRepo)
		wantErr   error
	}{
		{
			name:      "static admin deletes account",
			requester: &authdomain.Claims{Email: "admin@gala.local", Source: authdomain.SourceStatic},
			id:        5,
		},
		{
			name:      "cannot delete self",
			requester: &authdomain.Claims{AdminID: 5, Email: "a@gala.org", Source: authdomain.SourceAccount},
			id:        5,
			wantErr:   ErrCannotDeleteSelf,
		},
		{
			name:      "unknown id",
			requester: &authdomain.Claims{Source: authdomain.SourceStatic},
			id:        99,
			setupRepo: func(f *FakeAdminRepo) {
				f.DeleteFunc = func(ctx context.Context, db bun.IDB, id int64) error { return authdb.ErrNotFound }
			},
			wantErr: ErrAdminNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeAdminRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			svc := newTestService(t, repo, &FakeJWTProvider{}, Config{})

			err := svc.DeleteAdmin(context.Background(), tt.requester, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if errors.Is(tt.wantErr, ErrCannotDeleteSelf) {
					assert.NotContains(t, repo.Trace(), "Delete")
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, []string{"Delete"}, repo.Trace())
		})
	}
}
