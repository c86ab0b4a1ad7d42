// Package store defines the record store used by the command handlers to keep
// one profile blurb per folded nickname, plus the error kinds every backend
// reports. Backends live in the sub-packages.
package store

import (
	"context"
	"strings"
)

// Namespace is the collection every backend stores profiles under.
const Namespace = "whois"

// Profile is the record saved by @iam and read by @whois/@whoami.
// Nickname is always the folded key.
type Profile struct {
	Nickname    string `json:"nickname"    yaml:"nickname"    db:"nickname"`
	Description string `json:"description" yaml:"description" db:"description"`
}

// NewProfile builds a profile for nickname, folding it into a key.
func NewProfile(nickname, description string) *Profile {
	return &Profile{Nickname: Fold(nickname), Description: description}
}

// Store loads and saves profiles by key. Implementations never fold keys
// themselves; callers pass keys through Fold first.
//
// Load returns an error matching ErrRead both when the key is absent and when
// the stored record cannot be decoded. Save returns an error matching ErrWrite
// on any failure and leaves the previous record, if any, untouched.
type Store interface {
	Load(ctx context.Context, key string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	Close() error
}

// Maintainer is implemented by backends that need periodic housekeeping.
type Maintainer interface {
	RunMaintenance(ctx context.Context) error
}

// Fold normalizes an identity into a store key.
func Fold(nickname string) string {
	return strings.ToLower(nickname)
}
