package handler

import (
	"context"

	"user-management/internal/model"
)

// FakeAccounts implements Accounts for tests. Calling a method whose func
// is unset panics.
type FakeAccounts struct {
	CreateFn       func(ctx context.Context, name, email, password string) (*model.User, error)
	GetFn          func(ctx context.Context, id int) (*model.User, error)
	ListFn         func(ctx context.Context) ([]model.User, error)
	UpdateFn       func(ctx context.Context, id int, name, email *string) (*model.User, error)
	DeleteFn       func(ctx context.Context, id int) (bool, error)
	SearchFn       func(ctx context.Context, term string) ([]model.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*model.User, error)
}

func (f *FakeAccounts) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, name, email, password)
	}
	panic("unexpected Create")
}

func (f *FakeAccounts) Get(ctx context.Context, id int) (*model.User, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, id)
	}
	panic("unexpected Get")
}

func (f *FakeAccounts) List(ctx context.Context) ([]model.User, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	panic("unexpected List")
}

func (f *FakeAccounts) Update(ctx context.Context, id int, name, email *string) (*model.User, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, name, email)
	}
	panic("unexpected Update")
}

func (f *FakeAccounts) Delete(ctx context.Context, id int) (bool, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	panic("unexpected Delete")
}

func (f *FakeAccounts) Search(ctx context.Context, term string) ([]model.User, error) {
	if f.SearchFn != nil {
		return f.SearchFn(ctx, term)
	}
	panic("unexpected Search")
}

func (f *FakeAccounts) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if f.AuthenticateFn != nil {
		return f.AuthenticateFn(ctx, email, password)
	}
	panic("unexpected Authenticate")
}
