package usecase

import (
	"context"
	"time"

	"github.com/iho/gopix/internal/domain"
)

const defaultAliasCacheTTL = 5 * time.Minute

// PixKeyUseCase handles pix key lifecycle and resolution.
type PixKeyUseCase struct {
	pixKeyRepo PixKeyRepository
	cache      Cache
	cacheTTL   time.Duration
}

// NewPixKeyUseCase creates a new PixKeyUseCase. cache may be nil, in
// which case every Resolve hits the repository.
func NewPixKeyUseCase(pixKeyRepo PixKeyRepository, cache Cache, cacheTTL time.Duration) *PixKeyUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultAliasCacheTTL
	}

	return &PixKeyUseCase{
		pixKeyRepo: pixKeyRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Register binds alias to accountID. Uniqueness is global: the insert
// fails with domain.ErrDuplicateAlias if any account already holds it.
func (uc *PixKeyUseCase) Register(ctx context.Context, accountID, alias string) error {
	alias, err := domain.NormalizeAlias(alias)
	if err != nil {
		return err
	}

	key := &domain.PixKey{
		Alias:     alias,
		AccountID: accountID,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.pixKeyRepo.Insert(ctx, key); err != nil {
		return err
	}

	// A revoked alias may have been re-registered to another account;
	// drop any stale cached resolution.
	uc.invalidate(ctx, alias)

	return nil
}

// Revoke removes alias from accountID. An alias owned by a different
// account cannot be revoked: the repository matches both columns and
// reports domain.ErrAliasNotFound on zero rows.
func (uc *PixKeyUseCase) Revoke(ctx context.Context, accountID, alias string) error {
	alias, err := domain.NormalizeAlias(alias)
	if err != nil {
		return err
	}

	if err := uc.pixKeyRepo.Delete(ctx, accountID, alias); err != nil {
		return err
	}

	uc.invalidate(ctx, alias)

	return nil
}

// Resolve returns the account ID that owns alias.
func (uc *PixKeyUseCase) Resolve(ctx context.Context, alias string) (string, error) {
	alias, err := domain.NormalizeAlias(alias)
	if err != nil {
		return "", err
	}

	if uc.cache != nil {
		if accountID, err := uc.cache.Get(ctx, aliasCacheKey(alias)); err == nil && accountID != "" {
			return accountID, nil
		}
	}

	key, err := uc.pixKeyRepo.GetByAlias(ctx, alias)
	if err != nil {
		return "", err
	}

	if uc.cache != nil {
		// Cache failures never fail a resolution.
		_ = uc.cache.Set(ctx, aliasCacheKey(alias), key.AccountID, uc.cacheTTL)
	}

	return key.AccountID, nil
}

// List returns the alias strings held by accountID.
func (uc *PixKeyUseCase) List(ctx context.Context, accountID string) ([]string, error) {
	keys, err := uc.pixKeyRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	aliases := make([]string, 0, len(keys))
	for _, k := range keys {
		aliases = append(aliases, k.Alias)
	}

	return aliases, nil
}

func (uc *PixKeyUseCase) invalidate(ctx context.Context, alias string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, aliasCacheKey(alias))
}

func aliasCacheKey(alias string) string {
	return "pixkey:" + alias
}
