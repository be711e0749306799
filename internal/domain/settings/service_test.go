package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/types"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo stores one settings row per owner.
type fakeRepo struct {
	rows map[string]Settings
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]Settings)}
}

func (r *fakeRepo) Get(_ context.Context, ownerID string) (*Settings, error) {
	row, ok := r.rows[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("settings", ownerID)
	}
	cp := row
	return &cp, nil
}

func (r *fakeRepo) Upsert(_ context.Context, s *Settings) error {
	r.rows[s.OwnerID] = *s
	return nil
}

func strPtr(s string) *string { return &s }

func TestGet_ReturnsDefaultsBeforeFirstSave(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopTxManager{})

	got, err := svc.Get(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, "owner-1", got.OwnerID)
	assert.Equal(t, PDFThemeBlue, got.PDFTheme)
	assert.Equal(t, UIThemeLight, got.UITheme)
	assert.Equal(t, DefaultThemeColor, got.ThemeColor)
	assert.Equal(t, "EUR", got.DefaultCurrency)
	assert.True(t, got.DefaultVATRate.Equal(types.NewMoney(20)))

	// Reading defaults must not create a row.
	assert.Empty(t, repo.rows)
}

func TestApply_CreatesRowOnFirstSave(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopTxManager{})

	theme := PDFThemeGreen
	got, err := svc.Apply(context.Background(), "owner-1", Update{
		CompanyName: strPtr("Acme OU"),
		PDFTheme:    &theme,
		ThemeColor:  strPtr("#16A34A"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme OU", got.CompanyName)
	assert.Equal(t, PDFThemeGreen, got.PDFTheme)
	assert.Equal(t, "#16A34A", got.ThemeColor)
	// Untouched fields keep their defaults.
	assert.Equal(t, "EUR", got.DefaultCurrency)
	assert.Equal(t, UIThemeLight, got.UITheme)

	stored, err := svc.Get(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme OU", stored.CompanyName)
	assert.Equal(t, "#16A34A", stored.ThemeColor)
}

func TestApply_PatchKeepsUnsubmittedFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopTxManager{})

	_, err := svc.Apply(context.Background(), "owner-1", Update{
		CompanyName:  strPtr("Acme OU"),
		CompanyPhone: strPtr("+372 5555 5555"),
	})
	require.NoError(t, err)

	dark := UIThemeDark
	got, err := svc.Apply(context.Background(), "owner-1", Update{UITheme: &dark})
	require.NoError(t, err)

	assert.Equal(t, UIThemeDark, got.UITheme)
	assert.Equal(t, "Acme OU", got.CompanyName)
	assert.Equal(t, "+372 5555 5555", got.CompanyPhone)
}

func TestApply_RejectsUnknownThemes(t *testing.T) {
	svc := NewService(newFakeRepo(), nopTxManager{})

	badPDF := PDFTheme("crimson")
	_, err := svc.Apply(context.Background(), "owner-1", Update{PDFTheme: &badPDF})
	requireValidation(t, err)

	badUI := UITheme("solarized")
	_, err = svc.Apply(context.Background(), "owner-1", Update{UITheme: &badUI})
	requireValidation(t, err)
}

func TestApply_RejectsNegativeVATRate(t *testing.T) {
	svc := NewService(newFakeRepo(), nopTxManager{})

	rate := types.NewMoney(-1)
	_, err := svc.Apply(context.Background(), "owner-1", Update{DefaultVATRate: &rate})
	requireValidation(t, err)
}

func TestApply_RejectsEmptyCompanyName(t *testing.T) {
	svc := NewService(newFakeRepo(), nopTxManager{})

	_, err := svc.Apply(context.Background(), "owner-1", Update{CompanyName: strPtr("")})
	requireValidation(t, err)
}

func TestSettings_OwnersIndependent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopTxManager{})

	purple := PDFThemePurple
	_, err := svc.Apply(context.Background(), "owner-1", Update{PDFTheme: &purple})
	require.NoError(t, err)

	other, err := svc.Get(context.Background(), "owner-2")
	require.NoError(t, err)
	assert.Equal(t, PDFThemeBlue, other.PDFTheme)
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
