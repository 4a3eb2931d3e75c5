package share

import (
	"context"
	"errors"
	"testing"

	domainShare "shopping-list-api/internal/domain/share"
	shareMocks "shopping-list-api/internal/domain/share/mocks"
	"shopping-list-api/internal/domain/shoppinglist"
	listMocks "shopping-list-api/internal/domain/shoppinglist/mocks"
	"shopping-list-api/internal/notify"
	notifyMocks "shopping-list-api/internal/notify/mocks"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

type staticFriends struct {
	friends bool
	err     error
}

func (s staticFriends) AreFriends(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return s.friends, s.err
}

type fixture struct {
	lists     *listMocks.MockListRepository
	shares    *shareMocks.MockRepository
	publisher *notifyMocks.MockPublisher
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	return &fixture{
		lists:     listMocks.NewMockListRepository(ctrl),
		shares:    shareMocks.NewMockRepository(ctrl),
		publisher: notifyMocks.NewMockPublisher(ctrl),
	}
}

func (f *fixture) service(friends FriendChecker) *Service {
	return NewService(f.lists, f.shares, friends, f.publisher)
}

func TestShareList(t *testing.T) {
	ctx := context.Background()
	owner, friend := uuid.New(), uuid.New()
	listID := uuid.New()
	list := &shoppinglist.ShoppingList{ID: listID, OwnerID: owner, Name: "groceries"}

	t.Run("shares and notifies friend", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil)
		f.shares.EXPECT().ExistsBetween(ctx, listID, owner, friend).Return(false, nil)
		f.shares.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, g *domainShare.Grant) error {
			if g.ListID != listID || g.OwnerID != owner || g.FriendID != friend {
				t.Fatalf("unexpected grant %+v", g)
			}
			return nil
		})
		f.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e notify.Event) error {
			if e.Type != notify.ListShared || e.RecipientID != friend || e.ListID == nil || *e.ListID != listID {
				t.Fatalf("unexpected event %+v", e)
			}
			return nil
		})

		if err := f.service(staticFriends{friends: true}).ShareList(ctx, owner, listID, friend); err != nil {
			t.Fatalf("expected share to succeed, got %v", err)
		}
	})

	t.Run("missing list", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(nil, shoppinglist.ErrListNotFound)

		err := f.service(staticFriends{friends: true}).ShareList(ctx, owner, listID, friend)
		if !errors.Is(err, appErrors.ErrNoSuchList) {
			t.Fatalf("expected NO_SUCH_LIST, got %v", err)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil)

		err := f.service(staticFriends{friends: true}).ShareList(ctx, friend, listID, owner)
		if !errors.Is(err, appErrors.ErrListNotOwned) {
			t.Fatalf("expected LIST_NOT_OWNED, got %v", err)
		}
	})

	t.Run("not friends", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil)

		err := f.service(staticFriends{}).ShareList(ctx, owner, listID, friend)
		if !errors.Is(err, appErrors.ErrNotFriends) {
			t.Fatalf("expected NOT_FRIENDS, got %v", err)
		}
		if appErrors.KindOf(err) != appErrors.KindForbidden {
			t.Fatalf("expected forbidden kind, got %s", appErrors.KindOf(err))
		}
	})

	t.Run("already shared", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil)
		f.shares.EXPECT().ExistsBetween(ctx, listID, owner, friend).Return(true, nil)

		err := f.service(staticFriends{friends: true}).ShareList(ctx, owner, listID, friend)
		if !errors.Is(err, appErrors.ErrAlreadyShared) {
			t.Fatalf("expected ALREADY_SHARED, got %v", err)
		}
	})

	t.Run("concurrent duplicate", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil)
		f.shares.EXPECT().ExistsBetween(ctx, listID, owner, friend).Return(false, nil)
		f.shares.EXPECT().Create(ctx, gomock.Any()).Return(domainShare.ErrGrantExists)

		err := f.service(staticFriends{friends: true}).ShareList(ctx, owner, listID, friend)
		if !errors.Is(err, appErrors.ErrAlreadyShared) {
			t.Fatalf("expected ALREADY_SHARED, got %v", err)
		}
	})
}

func TestUnshare(t *testing.T) {
	ctx := context.Background()
	owner, friend := uuid.New(), uuid.New()
	listID := uuid.New()
	list := &shoppinglist.ShoppingList{ID: listID, OwnerID: owner}

	t.Run("removes pair", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil)
		f.shares.EXPECT().DeleteBetween(ctx, listID, friend, owner).Return(int64(1), nil)

		if err := f.service(staticFriends{}).Unshare(ctx, listID, friend, owner); err != nil {
			t.Fatalf("expected unshare to succeed, got %v", err)
		}
	})

	t.Run("self target removes every share of the requester", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil)
		f.shares.EXPECT().DeleteBetween(ctx, listID, owner, owner).Return(int64(0), nil)
		f.shares.EXPECT().DeleteAllForParticipant(ctx, listID, owner).Return(int64(3), nil)

		if err := f.service(staticFriends{}).Unshare(ctx, listID, owner, owner); err != nil {
			t.Fatalf("expected bulk unshare to succeed, got %v", err)
		}
	})

	t.Run("nothing shared", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil)
		f.shares.EXPECT().DeleteBetween(ctx, listID, owner, friend).Return(int64(0), nil)

		err := f.service(staticFriends{}).Unshare(ctx, listID, owner, friend)
		if !errors.Is(err, appErrors.ErrNotShared) {
			t.Fatalf("expected NOT_SHARED, got %v", err)
		}
	})

	t.Run("missing list", func(t *testing.T) {
		f := newFixture(t)
		f.lists.EXPECT().GetByID(ctx, listID).Return(nil, shoppinglist.ErrListNotFound)

		err := f.service(staticFriends{}).Unshare(ctx, listID, owner, friend)
		if !errors.Is(err, appErrors.ErrNoSuchList) {
			t.Fatalf("expected NO_SUCH_LIST, got %v", err)
		}
	})
}

func TestCanView(t *testing.T) {
	ctx := context.Background()
	owner, friend, stranger := uuid.New(), uuid.New(), uuid.New()
	listID := uuid.New()
	list := &shoppinglist.ShoppingList{ID: listID, OwnerID: owner}

	f := newFixture(t)
	svc := f.service(staticFriends{})

	f.lists.EXPECT().GetByID(ctx, listID).Return(list, nil).Times(3)
	f.shares.EXPECT().IsParticipant(ctx, listID, friend).Return(true, nil)
	f.shares.EXPECT().IsParticipant(ctx, listID, stranger).Return(false, nil)

	for _, tc := range []struct {
		name string
		user uuid.UUID
		want bool
	}{
		{name: "owner", user: owner, want: true},
		{name: "participant", user: friend, want: true},
		{name: "stranger", user: stranger, want: false},
	} {
		got, err := svc.CanView(ctx, listID, tc.user)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}

	f.lists.EXPECT().GetByID(ctx, listID).Return(nil, shoppinglist.ErrListNotFound)
	if ok, err := svc.CanView(ctx, listID, owner); err != nil || ok {
		t.Fatalf("expected missing list to be invisible, got %v %v", ok, err)
	}
}

func TestListSharedWith(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()
	params := pagination.Params{Page: 1, Limit: 10, Query: "gro"}

	f := newFixture(t)
	f.shares.EXPECT().ListSharedWith(ctx, user, params).Return([]*shoppinglist.ShoppingList{
		{ID: uuid.New(), Name: "groceries"},
	}, int64(1), nil)

	page, err := f.service(staticFriends{}).ListSharedWith(ctx, user, params)
	if err != nil {
		t.Fatalf("expected shared lists, got %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "groceries" || page.Page != 0 {
		t.Fatalf("unexpected search page %+v", page)
	}

	f.shares.EXPECT().ListSharedWith(ctx, user, params).Return(nil, int64(0), nil)
	if _, err := f.service(staticFriends{}).ListSharedWith(ctx, user, params); !errors.Is(err, appErrors.ErrEmptyResult) {
		t.Fatalf("expected EMPTY_RESULT, got %v", err)
	}
}
