package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_LastDate(t *testing.T) {
	t.Run("empty dataset", func(t *testing.T) {
		_, ok := Dataset{}.LastDate()
		assert.False(t, ok)
	})

	t.Run("returns maximum day", func(t *testing.T) {
		ds := Dataset{
			{Date: ParseDay("15/03/2024"), Product: "Xăng RON 95-III", Price: 23910},
			{Date: ParseDay("01/03/2024"), Product: "Xăng RON 95-III", Price: 23540},
			{Date: ParseDay("29/03/2024"), Product: "Xăng RON 95-III", Price: 24280},
		}
		last, ok := ds.LastDate()
		require.True(t, ok)
		assert.Equal(t, "29/03/2024", last.String())
	})

	t.Run("invalid days are ignored", func(t *testing.T) {
		ds := Dataset{{Date: CalendarDay{}, Product: "Dầu KO", Price: 20000}}
		_, ok := ds.LastDate()
		assert.False(t, ok)
	})
}

func TestDataset_ProductLabels(t *testing.T) {
	ds := Dataset{
		{Date: ParseDay("01/03/2024"), Product: "Xăng RON 95-III", Price: 23540},
		{Date: ParseDay("01/03/2024"), Product: "Dầu DO 0,05S-II", Price: 20450},
		{Date: ParseDay("15/03/2024"), Product: "Xăng RON 95-III", Price: 23910},
	}
	assert.Equal(t, []string{"Xăng RON 95-III", "Dầu DO 0,05S-II"}, ds.ProductLabels())
}
