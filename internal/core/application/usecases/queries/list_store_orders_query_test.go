package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListStoreOrdersQuery(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		offset  int
		wantErr bool
	}{
		{name: "default page", limit: 0, offset: 0},
		{name: "max page", limit: queries.MaxOrdersPageSize, offset: 40},
		{name: "page too large", limit: queries.MaxOrdersPageSize + 1, wantErr: true},
		{name: "negative limit", limit: -1, wantErr: true},
		{name: "negative offset", limit: 10, offset: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewListStoreOrdersQuery(kernel.NewUUID(), tt.limit, tt.offset)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, query.Validate())
		})
	}
}

func TestListStoreOrdersQuery_NotConstructed(t *testing.T) {
	assert.ErrorIs(t, queries.ListStoreOrdersQuery{}.Validate(), queries.ErrListStoreOrdersQueryIsNotConstructed)
}
