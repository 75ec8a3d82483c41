package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdeck/dealdeck/internal/domain"
)

const feedHeader = "external_id,hotel_name,city,country,phone,rating,room_type,price_per_night,original_price,discount_percent,checkin_date,checkout_date,is_available,categories"

type fakeHotelRepo struct {
	nextID  int64
	upserts []string
}

func (f *fakeHotelRepo) Get(ctx context.Context, id int64) (*domain.Hotel, error) {
	return nil, domain.ErrHotelNotFound
}

func (f *fakeHotelRepo) UpsertByName(ctx context.Context, h *domain.Hotel) error {
	f.nextID++
	h.ID = f.nextID
	f.upserts = append(f.upserts, h.Name)
	return nil
}

type fakeDealRepo struct {
	domain.DealRepository
	created   []domain.Deal
	externals map[int64]bool
}

func (f *fakeDealRepo) Create(ctx context.Context, d *domain.Deal) error {
	if f.externals == nil {
		f.externals = make(map[int64]bool)
	}
	if f.externals[d.ExternalID] {
		return domain.ErrDuplicateDeal
	}
	f.externals[d.ExternalID] = true
	d.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *d)
	return nil
}

func TestImportCSV(t *testing.T) {
	feed := feedHeader + "\n" +
		`101,Grand Budapest,Berlin,Germany,+49 30 1234,4,suite,120.50,180.00,33,2026-09-01,2026-09-04,true,"spa,family"` + "\n" +
		`102,Grand Budapest,Berlin,Germany,+49 30 1234,5,double,89.00,89.00,0,2026-09-10,2026-09-12,false,` + "\n" +
		`103,Drake Hotel,Chicago,USA,+1 312 5678,3,single,75.25,100.00,25,2026-10-01,2026-10-03,true,business` + "\n"

	hotels := &fakeHotelRepo{}
	deals := &fakeDealRepo{}
	imp := NewImporter(hotels, deals)

	result, err := imp.ImportCSV(context.Background(), strings.NewReader(feed))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Zero(t, result.Skipped)
	assert.Equal(t, []string{"Grand Budapest", "Drake Hotel"}, hotels.upserts, "each hotel upserts once per run")

	require.Len(t, deals.created, 3)
	first := deals.created[0]
	assert.Equal(t, int64(101), first.ExternalID)
	assert.Equal(t, int64(1), first.HotelID)
	assert.Equal(t, 120.50, first.PricePerNight)
	assert.Equal(t, "spa,family", first.Categories)
	assert.Equal(t, "2026-09-01", first.CheckinDate.Format(dateLayout))

	assert.Equal(t, int64(2), deals.created[2].HotelID, "second hotel gets its own id")
}

func TestImportCSVSkipsDuplicates(t *testing.T) {
	feed := feedHeader + "\n" +
		`101,Grand Budapest,Berlin,Germany,+49 30 1234,4,suite,120.50,180.00,33,2026-09-01,2026-09-04,true,spa` + "\n"

	hotels := &fakeHotelRepo{}
	deals := &fakeDealRepo{externals: map[int64]bool{101: true}}
	imp := NewImporter(hotels, deals)

	result, err := imp.ImportCSV(context.Background(), strings.NewReader(feed))
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportCSVRejectsMissingColumn(t *testing.T) {
	feed := "external_id,hotel_name\n101,Grand Budapest\n"
	imp := NewImporter(&fakeHotelRepo{}, &fakeDealRepo{})

	_, err := imp.ImportCSV(context.Background(), strings.NewReader(feed))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestImportCSVReportsBadRowWithLine(t *testing.T) {
	feed := feedHeader + "\n" +
		`101,Grand Budapest,Berlin,Germany,+49 30 1234,4,suite,120.50,180.00,33,2026-09-01,2026-09-04,true,spa` + "\n" +
		`bad,Drake Hotel,Chicago,USA,+1 312 5678,3,single,75.25,100.00,25,2026-10-01,2026-10-03,true,` + "\n"

	imp := NewImporter(&fakeHotelRepo{}, &fakeDealRepo{})

	_, err := imp.ImportCSV(context.Background(), strings.NewReader(feed))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestImportCSVRejectsBadRating(t *testing.T) {
	feed := feedHeader + "\n" +
		`101,Grand Budapest,Berlin,Germany,+49 30 1234,9,suite,120.50,180.00,33,2026-09-01,2026-09-04,true,spa` + "\n"

	imp := NewImporter(&fakeHotelRepo{}, &fakeDealRepo{})

	_, err := imp.ImportCSV(context.Background(), strings.NewReader(feed))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating")
}
