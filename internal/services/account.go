package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/account-inventory/internal/inventory"
	"github.com/yungbote/account-inventory/internal/platform/apierr"
	"github.com/yungbote/account-inventory/internal/platform/ctxutil"
	"github.com/yungbote/account-inventory/internal/platform/logger"
	"github.com/yungbote/account-inventory/internal/store"
)

// AccountService answers inventory queries. Every call re-reads the source.
type AccountService interface {
	List(ctx context.Context, f inventory.Filter) ([]inventory.AccountSummary, error)
	Get(ctx context.Context, accountNumber int64) (inventory.Account, error)
	Tenants(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (inventory.Stats, error)
}

type AccountServiceOptions struct {
	// StrictDuplicates fails a load whose records repeat an account number.
	StrictDuplicates bool
}

type accountService struct {
	log    *logger.Logger
	source store.Source
	opts   AccountServiceOptions
}

func NewAccountService(log *logger.Logger, source store.Source, opts AccountServiceOptions) AccountService {
	serviceLog := log.With("service", "AccountService")
	return &accountService{
		log:    serviceLog,
		source: source,
		opts:   opts,
	}
}

func (s *accountService) List(ctx context.Context, f inventory.Filter) ([]inventory.AccountSummary, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.List(accounts, f), nil
}

func (s *accountService) Get(ctx context.Context, accountNumber int64) (inventory.Account, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return inventory.Account{}, err
	}
	acct, err := inventory.Get(accounts, accountNumber)
	if errors.Is(err, inventory.ErrNotFound) {
		return inventory.Account{}, apierr.New(http.StatusNotFound, "account_not_found", errors.New("Account not found"))
	}
	if err != nil {
		return inventory.Account{}, apierr.New(http.StatusInternalServerError, "get_account_failed", err)
	}
	return acct, nil
}

func (s *accountService) Tenants(ctx context.Context) ([]string, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.Tenants(accounts), nil
}

func (s *accountService) Stats(ctx context.Context) (inventory.Stats, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return inventory.Stats{}, err
	}
	return inventory.ComputeStats(accounts), nil
}

func (s *accountService) load(ctx context.Context) ([]inventory.Account, error) {
	if s.source == nil {
		return nil, apierr.New(http.StatusInternalServerError, "source_not_configured", fmt.Errorf("missing account source"))
	}
	log := s.log.With(ctxutil.LogFields(ctx)...)
	raws, err := s.source.Load(ctx)
	if err != nil {
		log.Error("Load accounts failed", "source", s.source.Describe(), "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "load_accounts_failed", fmt.Errorf("load accounts: %w", err)).
			WithMessage("account data could not be loaded")
	}
	accounts, err := inventory.NormalizeAll(raws)
	if err != nil {
		log.Error("Normalize accounts failed", "source", s.source.Describe(), "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "malformed_record", err).
			WithMessage("account data contains a malformed record")
	}
	if dups := inventory.DuplicateNumbers(accounts); len(dups) > 0 {
		if s.opts.StrictDuplicates {
			log.Error("Duplicate account numbers", "source", s.source.Describe(), "numbers", dups)
			return nil, apierr.New(http.StatusInternalServerError, "data_integrity", &inventory.DuplicateAccountError{Numbers: dups}).
				WithMessage("account data contains duplicate account numbers")
		}
		log.Warn("Duplicate account numbers, first record wins", "source", s.source.Describe(), "numbers", dups)
	}
	return accounts, nil
}
