// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/villarank/villarank/internal/models"
)

// Key prefixes for BadgerDB storage.
const (
	accountKeyPrefix = "account:"
	emailKeyPrefix   = "account_email:"
)

// BadgerRepository implements Repository on BadgerDB. Accounts are
// stored by id, with a second key mapping email to id so uniqueness
// checks and login lookups stay single-key reads.
type BadgerRepository struct {
	db *badger.DB
}

// NewBadgerRepository creates a BadgerDB-backed account repository.
func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

// OpenBadger opens (or creates) the account database at path.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open account store: %w", err)
	}
	return db, nil
}

// Create implements Repository.
func (r *BadgerRepository) Create(ctx context.Context, account *models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		emailKey := []byte(emailKeyPrefix + account.Email)
		_, err := txn.Get(emailKey)
		if err == nil {
			return ErrEmailExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		if err := txn.Set([]byte(accountKeyPrefix+account.ID), data); err != nil {
			return fmt.Errorf("set account: %w", err)
		}
		if err := txn.Set(emailKey, []byte(account.ID)); err != nil {
			return fmt.Errorf("set email mapping: %w", err)
		}
		return nil
	})
}

// FindByEmail implements Repository.
func (r *BadgerRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(emailKeyPrefix + email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return fmt.Errorf("get email mapping: %w", err)
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}

		return readAccount(txn, id, &account)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByID implements Repository.
func (r *BadgerRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account

	err := r.db.View(func(txn *badger.Txn) error {
		return readAccount(txn, id, &account)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Update implements Repository.
func (r *BadgerRepository) Update(ctx context.Context, account *models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		var current models.Account
		if err := readAccount(txn, account.ID, &current); err != nil {
			return err
		}

		// Email changes must keep the email index consistent.
		if current.Email != account.Email {
			newEmailKey := []byte(emailKeyPrefix + account.Email)
			if _, err := txn.Get(newEmailKey); err == nil {
				return ErrEmailExists
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check email: %w", err)
			}
			if err := txn.Delete([]byte(emailKeyPrefix + current.Email)); err != nil {
				return fmt.Errorf("delete email mapping: %w", err)
			}
			if err := txn.Set(newEmailKey, []byte(account.ID)); err != nil {
				return fmt.Errorf("set email mapping: %w", err)
			}
		}

		if err := txn.Set([]byte(accountKeyPrefix+account.ID), data); err != nil {
			return fmt.Errorf("set account: %w", err)
		}
		return nil
	})
}

// Count implements Repository.
func (r *BadgerRepository) Count(ctx context.Context) (int, error) {
	count := 0

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(accountKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// readAccount loads one account within a transaction.
func readAccount(txn *badger.Txn, id string, out *models.Account) error {
	item, err := txn.Get([]byte(accountKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}
