// Package store defines the contract the aggregation core expects from
// a persistence backend. Backends (sqlite, sheets, memory) implement
// these ports; the aggregators never see which one is in use.
package store

import (
	"context"
	"errors"

	"chama/internal/core"
)

var (
	// ErrDuplicateMember is returned when registering an ID that
	// already exists.
	ErrDuplicateMember = errors.New("member id already registered")

	// ErrUnknownMember is returned when a contribution references an
	// unregistered member.
	ErrUnknownMember = errors.New("member id not registered")

	// ErrNotFound is returned when an update references a contribution
	// that does not exist.
	ErrNotFound = errors.New("contribution not found")
)

type (
	// MemberRegistry manages the registered members of the pool.
	MemberRegistry interface {
		// RegisterMember adds a member. Fails with ErrDuplicateMember
		// when the ID is taken.
		RegisterMember(ctx context.Context, id, name string) error

		// ListMembers returns all members in registration order.
		ListMembers(ctx context.Context) ([]core.Member, error)
	}

	// ContributionWriter appends and amends contributions.
	ContributionWriter interface {
		// AddContribution appends a contribution and returns the
		// store-assigned ID. Fails with ErrUnknownMember when the
		// member is not registered.
		AddContribution(ctx context.Context, memberID string, amount float64, date core.Date) (string, error)

		// UpdateContribution changes amount and date of an existing
		// contribution. Fails with ErrNotFound when the ID is unknown.
		UpdateContribution(ctx context.Context, id string, amount float64, date core.Date) error
	}

	// ContributionLister reads contributions back. An empty memberID
	// returns every contribution; both cases preserve insertion order.
	ContributionLister interface {
		ListContributions(ctx context.Context, memberID string) ([]core.Contribution, error)
	}

	// Store is the full backend surface.
	Store interface {
		MemberRegistry
		ContributionWriter
		ContributionLister
	}
)
