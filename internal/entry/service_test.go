package entry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseKind(t *testing.T) {
	k, err := entry.ParseKind(" Liability ")
	require.NoError(t, err)
	assert.Equal(t, entry.KindLiability, k)

	_, err = entry.ParseKind("revenue")
	assert.ErrorIs(t, err, entry.ErrInvalidKind)
}

func TestService_Create(t *testing.T) {
	type args struct {
		params entry.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *entry.MockRepository)
		wantErr   bool
	}

	valid := entry.CreateParams{
		Kind:       entry.KindIncome,
		Amount:     decimal.NewFromInt(1000),
		OccurredOn: day(2024, time.March, 3),
		Category:   "daily",
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: valid},
			setupMock: func(m *entry.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), valid).
					DoAndReturn(func(_ context.Context, p entry.CreateParams) (*entry.Entry, error) {
						return &entry.Entry{ID: "42", Kind: p.Kind, Amount: p.Amount, OccurredOn: p.OccurredOn}, nil
					})
			},
		},
		{
			name: "RepoError",
			args: args{params: valid},
			setupMock: func(m *entry.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("backend down"))
			},
			wantErr: true,
		},
		{
			name: "NonPositiveAmount",
			args: args{params: entry.CreateParams{
				Kind:       entry.KindExpense,
				Amount:     decimal.Zero,
				OccurredOn: day(2024, time.March, 3),
			}},
			wantErr: true,
		},
		{
			name: "MissingDate",
			args: args{params: entry.CreateParams{
				Kind:   entry.KindExpense,
				Amount: decimal.NewFromInt(5),
			}},
			wantErr: true,
		},
		{
			name: "InvalidKind",
			args: args{params: entry.CreateParams{
				Kind:       "revenue",
				Amount:     decimal.NewFromInt(5),
				OccurredOn: day(2024, time.March, 3),
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := entry.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := entry.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "42", got.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	stored := []entry.Entry{
		{ID: "c", Kind: entry.KindExpense, OccurredOn: day(2024, time.May, 20)},
		{ID: "a", Kind: entry.KindExpense, OccurredOn: day(2024, time.May, 1)},
		{ID: "out", Kind: entry.KindExpense, OccurredOn: day(2024, time.April, 30)},
		{ID: "b", Kind: entry.KindExpense, OccurredOn: time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC)},
	}

	type testCase struct {
		name      string
		filter    entry.ListFilter
		setupMock func(m *entry.MockRepository)
		wantIDs   []string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "FiltersAndSorts",
			filter: entry.ListFilter{
				Kind:      entry.KindExpense,
				StartDate: new(day(2024, time.May, 1)),
				EndDate:   new(day(2024, time.May, 31)),
			},
			setupMock: func(m *entry.MockRepository) {
				m.EXPECT().ListEntries(gomock.Any(), entry.KindExpense).Return(stored, nil)
			},
			wantIDs: []string{"a", "c", "b"},
		},
		{
			name:   "NoWindow",
			filter: entry.ListFilter{Kind: entry.KindExpense},
			setupMock: func(m *entry.MockRepository) {
				m.EXPECT().ListEntries(gomock.Any(), entry.KindExpense).Return(stored, nil)
			},
			wantIDs: []string{"out", "a", "c", "b"},
		},
		{
			name:   "RepoError",
			filter: entry.ListFilter{Kind: entry.KindAsset},
			setupMock: func(m *entry.MockRepository) {
				m.EXPECT().ListEntries(gomock.Any(), entry.KindAsset).Return(nil, errors.New("timeout"))
			},
			wantErr: true,
		},
		{
			name:    "InvalidKind",
			filter:  entry.ListFilter{Kind: "bogus"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := entry.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := entry.NewService(repo).List(context.Background(), tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			ids := make([]string, len(got))
			for i, e := range got {
				ids[i] = e.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_Snapshot(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := entry.NewMockRepository(ctrl)
		for _, k := range entry.Kinds() {
			repo.EXPECT().ListEntries(gomock.Any(), k).Return([]entry.Entry{{ID: string(k), Kind: k}}, nil)
		}

		snap, err := entry.NewService(repo).Snapshot(context.Background())
		require.NoError(t, err)

		for _, k := range entry.Kinds() {
			require.Len(t, snap.Of(k), 1)
			assert.Equal(t, string(k), snap.Of(k)[0].ID)
		}

		assert.Len(t, snap.All(), 5)
	})

	t.Run("AnyFailureFailsSnapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := entry.NewMockRepository(ctrl)
		repo.EXPECT().ListEntries(gomock.Any(), entry.KindLiability).Return(nil, errors.New("boom"))
		repo.EXPECT().ListEntries(gomock.Any(), gomock.Not(entry.KindLiability)).Return(nil, nil).AnyTimes()

		snap, err := entry.NewService(repo).Snapshot(context.Background())
		require.Error(t, err)
		assert.Nil(t, snap)
		assert.Contains(t, err.Error(), "liability")
	})
}

func TestService_CreateBatch(t *testing.T) {
	params := []entry.CreateParams{
		{Kind: entry.KindIncome, Amount: decimal.NewFromInt(10), OccurredOn: day(2024, 1, 1)},
		{Kind: entry.KindExpense, Amount: decimal.NewFromInt(20), OccurredOn: day(2024, 1, 2)},
		{Kind: entry.KindAsset, Amount: decimal.NewFromInt(30), OccurredOn: day(2024, 1, 3)},
	}

	t.Run("StopsAtFirstFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := entry.NewMockRepository(ctrl)
		gomock.InOrder(
			repo.EXPECT().CreateEntry(gomock.Any(), params[0]).Return(&entry.Entry{ID: "1"}, nil),
			repo.EXPECT().CreateEntry(gomock.Any(), params[1]).Return(nil, errors.New("rejected")),
		)

		created, err := entry.NewService(repo).CreateBatch(context.Background(), params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 2")
		require.Len(t, created, 1)
		assert.Equal(t, "1", created[0].ID)
	})

	t.Run("ValidatesBeforeCreating", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := entry.NewMockRepository(ctrl)

		bad := append([]entry.CreateParams{}, params...)
		bad[2].Amount = decimal.NewFromInt(-1)

		created, err := entry.NewService(repo).CreateBatch(context.Background(), bad)
		require.Error(t, err)
		assert.Empty(t, created)
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		created, err := entry.NewService(entry.NewMockRepository(ctrl)).CreateBatch(context.Background(), nil)
		assert.NoError(t, err)
		assert.Nil(t, created)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := entry.NewMockRepository(ctrl)
	repo.EXPECT().DeleteEntry(gomock.Any(), entry.KindEquity, "7").Return(nil)

	svc := entry.NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), entry.KindEquity, "7"))
	assert.ErrorIs(t, svc.Delete(context.Background(), entry.KindEquity, ""), entry.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "x", "7"), entry.ErrInvalidKind)
}

func TestService_Update(t *testing.T) {
	valid := entry.CreateParams{
		Kind:       entry.KindAsset,
		Amount:     decimal.NewFromInt(900),
		OccurredOn: day(2024, 4, 1),
		Category:   "mesin",
	}

	type testCase struct {
		name    string
		id      string
		params  entry.CreateParams
		repoErr error
		wantErr error
	}

	tests := []testCase{
		{name: "Updates", id: "a1", params: valid},
		{name: "ZeroAmount", id: "a1", params: entry.CreateParams{Kind: entry.KindAsset, OccurredOn: day(2024, 4, 1)}, wantErr: entry.ErrInvalidEntry},
		{name: "MissingDate", id: "a1", params: entry.CreateParams{Kind: entry.KindAsset, Amount: decimal.NewFromInt(1)}, wantErr: entry.ErrInvalidEntry},
		{name: "UnknownKind", id: "a1", params: entry.CreateParams{Kind: "gift", Amount: decimal.NewFromInt(1), OccurredOn: day(2024, 4, 1)}, wantErr: entry.ErrInvalidKind},
		{name: "EmptyID", params: valid, wantErr: entry.ErrNotFound},
		{name: "RemoteMissing", id: "gone", params: valid, repoErr: entry.ErrNotFound, wantErr: entry.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := entry.NewMockRepository(ctrl)

			if tt.wantErr == nil || tt.repoErr != nil {
				repo.EXPECT().UpdateEntry(gomock.Any(), tt.id, tt.params).
					Return(&entry.Entry{ID: tt.id, Kind: tt.params.Kind, Amount: tt.params.Amount}, tt.repoErr)
			}

			got, err := entry.NewService(repo).Update(context.Background(), tt.id, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "a1", got.ID)
			assert.Equal(t, "900", got.Amount.String())
		})
	}
}
