package display

import (
	"testing"

	"fxdisplay/internal/domain"

	"github.com/stretchr/testify/require"
)

func codes(badges []Badge) []domain.CurrencyCode {
	out := make([]domain.CurrencyCode, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.Code)
	}
	return out
}

func TestPresenter_Badge(t *testing.T) {
	f := newFixture(t)

	b, err := f.presenter.Badge("USD")
	require.NoError(t, err)
	require.Equal(t, Badge{Code: "USD", Symbol: "$", Flag: "🇺🇸", Name: "US Dollar", ColorClass: "badge-green"}, b)

	_, err = f.presenter.Badge("XXX")
	require.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestPresenter_MultiBadge_PrimaryFirstThenInputOrder(t *testing.T) {
	f := newFixture(t)

	mb, err := f.presenter.MultiBadge([]domain.CurrencyAmount{amount("USD", "1"), amount("EUR", "2"), amount("GBP", "3")}, "EUR", 0, domain.RoundBanker)

	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyCode{"EUR", "USD", "GBP"}, codes(mb.Visible))
	require.Zero(t, mb.Overflow)
	require.Empty(t, mb.More)
	require.Len(t, mb.Details, 3)
	require.Equal(t, "€2.00", mb.Details[0].Formatted)
}

func TestPresenter_MultiBadge_Overflow(t *testing.T) {
	f := newFixture(t)
	amounts := []domain.CurrencyAmount{
		amount("USD", "1"), amount("EUR", "2"), amount("GBP", "3"), amount("RUB", "4"), amount("JPY", "500"),
	}

	mb, err := f.presenter.MultiBadge(amounts, "RUB", 0, domain.RoundBanker)

	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyCode{"RUB", "USD", "EUR"}, codes(mb.Visible))
	require.Equal(t, 2, mb.Overflow)
	require.Equal(t, "+2", mb.More)
	require.Len(t, mb.Details, 5)
	require.Equal(t, domain.CurrencyCode("GBP"), mb.Details[3].Badge.Code)
	require.Equal(t, domain.CurrencyCode("JPY"), mb.Details[4].Badge.Code)
	require.Equal(t, "¥500", mb.Details[4].Formatted)
}

func TestPresenter_MultiBadge_CustomMax(t *testing.T) {
	f := newFixture(t)

	mb, err := f.presenter.MultiBadge([]domain.CurrencyAmount{amount("USD", "1"), amount("EUR", "2")}, "CAD", 1, domain.RoundBanker)

	require.NoError(t, err)
	require.Equal(t, []domain.CurrencyCode{"USD"}, codes(mb.Visible))
	require.Equal(t, "+1", mb.More)
}

func TestPresenter_MultiBadge_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.presenter.MultiBadge(nil, "EUR", 0, domain.RoundBanker)
	require.ErrorIs(t, err, domain.ErrEmptyAmounts)

	_, err = f.presenter.MultiBadge([]domain.CurrencyAmount{amount("XXX", "1")}, "EUR", 0, domain.RoundBanker)
	require.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestOrderForDisplay_DoesNotMutateInput(t *testing.T) {
	in := []domain.CurrencyAmount{amount("USD", "1"), amount("EUR", "2")}

	out := OrderForDisplay(in, "EUR")

	require.Equal(t, domain.CurrencyCode("EUR"), out[0].Currency)
	require.Equal(t, domain.CurrencyCode("USD"), in[0].Currency)
}

func TestOrderForDisplay_KeepsInputOrderAfterPrimary(t *testing.T) {
	in := []domain.CurrencyAmount{amount("USD", "1"), amount("EUR", "2"), amount("GBP", "3"), amount("BRL", "4")}

	out := OrderForDisplay(in, "EUR")

	got := make([]domain.CurrencyCode, 0, len(out))
	for _, a := range out {
		got = append(got, a.Currency)
	}
	require.Equal(t, []domain.CurrencyCode{"EUR", "USD", "GBP", "BRL"}, got)
}
