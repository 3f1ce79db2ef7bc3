package pricingapi_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap/zaptest"

	"quote-wizard/internal/model"
	"quote-wizard/internal/pricingapi"
	"quote-wizard/internal/testbackend"
)

func TestCalculateParsesDecimalStrings(t *testing.T) {
	b := testbackend.Start()
	defer b.Close()
	c := b.Client(zaptest.NewLogger(t))

	q, err := c.Calculate(context.Background(), model.CalculateRequest{
		OriginPostalCode:      "10115",
		DestinationPostalCode: "80331",
		ApartmentSize:         model.SizeTwoBR,
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, q.MinPrice.Float())
	assert.Equal(t, 1280.0, q.MaxPrice.Float())
	assert.Equal(t, 40.0, q.VolumeM3.Float())
	assert.Equal(t, 1, b.Calls(testbackend.PathCalculate))

	sent := b.CalculateRequests()
	require.Len(t, sent, 1)
	assert.Nil(t, sent[0].VolumeM3)
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	b := testbackend.Start()
	defer b.Close()
	c := b.Client(zaptest.NewLogger(t))

	b.Fail(testbackend.PathCalculate, fasthttp.StatusBadRequest, "Could not calculate distance between postal codes")
	_, err := c.Calculate(context.Background(), model.CalculateRequest{})
	require.Error(t, err)

	var apiErr *pricingapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fasthttp.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Could not calculate distance between postal codes", apiErr.Detail)
	assert.True(t, pricingapi.IsStatus(err, fasthttp.StatusBadRequest))
}

func TestItemTemplatesFilter(t *testing.T) {
	b := testbackend.Start()
	defer b.Close()
	c := b.Client(zaptest.NewLogger(t))

	all, err := c.ItemTemplates(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, len(testbackend.DefaultTemplates()))

	bedroom, err := c.ItemTemplates(context.Background(), "bedroom")
	require.NoError(t, err)
	require.Len(t, bedroom, 2)
	for _, tpl := range bedroom {
		assert.Equal(t, "bedroom", tpl.Category)
	}
}

func TestSmartPredictionAndAdjustment(t *testing.T) {
	b := testbackend.Start()
	defer b.Close()
	c := b.Client(zaptest.NewLogger(t))
	ctx := context.Background()

	p, err := c.SmartPrediction(ctx, model.SmartProfile{ApartmentSize: model.SizeTwoBR, HouseholdType: "couple"})
	require.NoError(t, err)
	assert.Equal(t, "2br_couple_normal", p.ProfileKey)
	assert.Equal(t, 32.5, p.Volume())

	adj, err := c.QuickAdjustment(ctx, model.QuickAdjustment{ProfileKey: p.ProfileKey, BoxCount: 40, HasLargePlants: true})
	require.NoError(t, err)
	assert.Equal(t, 34.5, adj.AdjustedVolumeM3.Float())
}

func TestNotConfigured(t *testing.T) {
	c := pricingapi.New("", time.Second, zaptest.NewLogger(t))
	_, err := c.Calculate(context.Background(), model.CalculateRequest{})
	assert.ErrorIs(t, err, pricingapi.ErrNotConfigured)
}

func TestCancelledContext(t *testing.T) {
	b := testbackend.Start()
	defer b.Close()
	c := b.Client(zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Submit(ctx, model.SubmitRequest{CustomerEmail: "a@b.de"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, b.Calls(testbackend.PathSubmit))
}
