package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-till/models"
)

func TestParseSetupPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.SetupPayload
		wantErr bool
	}{
		{
			name: "valid payload",
			raw:  `{"slug":"warung-uwais","api_url":"https://uwaispos.online/api/","name":"Warung Uwais"}`,
			want: models.SetupPayload{Slug: "warung-uwais", APIURL: "https://uwaispos.online/api", Name: "Warung Uwais"},
		},
		{name: "not json", raw: "WIFI:S:cafe;;", wantErr: true},
		{name: "missing slug", raw: `{"api_url":"https://x.id/api","name":"X"}`, wantErr: true},
		{name: "blank name", raw: `{"slug":"x","api_url":"https://x.id/api","name":"  "}`, wantErr: true},
		{name: "missing api url", raw: `{"slug":"x","name":"X"}`, wantErr: true},
		{name: "relative api url", raw: `{"slug":"x","api_url":"/api","name":"X"}`, wantErr: true},
		{name: "ftp api url", raw: `{"slug":"x","api_url":"ftp://x.id/api","name":"X"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSetupPayload(tt.raw)
			if tt.wantErr {
				assert.True(t, IsValidation(err), "want ValidationError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupService_ApplyRejectedPayloadWritesNothing(t *testing.T) {
	_, srv := newFakeBackend(t)
	till := newTestTill(t, srv, true)

	_, err := till.Setup.Apply(`{"slug":"baru"}`)
	require.Error(t, err)

	s, err := till.Sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, testSlug, s.StoreSlug)
	assert.Equal(t, testToken, s.Token)
}

func TestSetupService_ApplyNewStoreLogsOut(t *testing.T) {
	_, srv := newFakeBackend(t)
	till := newTestTill(t, srv, true)
	till.Cart.AddItem(models.Product{ID: 1, Name: "Nasi Goreng", Price: 25000})

	p, err := till.Setup.Apply(`{"slug":"toko-baru","api_url":"https://baru.example.com/api","name":"Toko Baru"}`)
	require.NoError(t, err)
	assert.Equal(t, "toko-baru", p.Slug)

	stage, err := till.Sessions.Stage()
	require.NoError(t, err)
	assert.Equal(t, models.StageSelectUser, stage)
	assert.Empty(t, till.Cart.Lines())
}

func TestSetupService_Reset(t *testing.T) {
	_, srv := newFakeBackend(t)
	till := newTestTill(t, srv, true)

	require.NoError(t, till.Setup.Reset())

	stage, err := till.Sessions.Stage()
	require.NoError(t, err)
	assert.Equal(t, models.StageSetup, stage)
}
