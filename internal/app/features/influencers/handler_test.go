package influencers_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/affiliatehub/internal/app/features/influencers"
	"github.com/dalemusser/affiliatehub/internal/domain/models"
	"github.com/dalemusser/affiliatehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*influencers.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := influencers.NewHandler(db, zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func validBody() map[string]any {
	return map[string]any{
		"name":      "Michael Ryhe",
		"country":   "France",
		"followers": 1000000,
		"status":    "verified",
		"baseCost":  200000,
		"avatar":    "1.jpg",
	}
}

func TestHandleCreate_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewAuthenticatedRequest(t, "POST", "/influencers", validBody(), testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var got models.Influencer
	rec.DecodeJSON(t, &got)
	if got.ID == primitive.NilObjectID || got.Name != "Michael Ryhe" || got.Followers != 1000000 {
		t.Errorf("unexpected body: %+v", got)
	}
	rec.AssertContains(t, `"baseCost":200000`)
	rec.AssertContains(t, `"_id":`)

	count, err := fixtures.DB().Collection("influencers").CountDocuments(ctx, bson.M{"name": "Michael Ryhe"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 influencer, got %d", count)
	}
}

func TestHandleCreate_StripsMarkup(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := validBody()
	body["name"] = "<b>Tom</b> & Jerry"
	req := testutil.NewAuthenticatedRequest(t, "POST", "/influencers", body, testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var got models.Influencer
	rec.DecodeJSON(t, &got)
	if got.Name != "Tom & Jerry" {
		t.Errorf("Name = %q, want %q", got.Name, "Tom & Jerry")
	}
}

func TestHandleCreate_IgnoresUnknownFields(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := validBody()
	body["rank"] = 1
	body["_id"] = "not-an-id"
	req := testutil.NewAuthenticatedRequest(t, "POST", "/influencers", body, testutil.AdminUser())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var got models.Influencer
	rec.DecodeJSON(t, &got)
	if got.ID.IsZero() || got.ID.Hex() == "not-an-id" {
		t.Errorf("expected a store-assigned id, got %q", got.ID.Hex())
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	// Validation runs before the store, so no database is needed.
	handler := influencers.NewHandler(nil, zap.NewNop())

	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   string
	}{
		{"missing name", func(b map[string]any) { delete(b, "name") }, "Name is required."},
		{"negative followers", func(b map[string]any) { b["followers"] = -1 }, "Followers must not be less than 0."},
		{"bad status", func(b map[string]any) { b["status"] = "famous" }, "Status must be one of: verified, pending, rejected."},
		{"missing base cost", func(b map[string]any) { delete(b, "baseCost") }, "Base cost is required."},
		{"wrong type", func(b map[string]any) { b["followers"] = "many" }, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.mutate(body)
			req := testutil.NewAuthenticatedRequest(t, "POST", "/influencers", body, testutil.AdminUser())
			rec := testutil.NewRecorder()
			handler.HandleCreate(rec, req)

			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestServeList(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateInfluencer(ctx, "Bea")
	fixtures.CreateInfluencer(ctx, "Al")

	rec := testutil.NewRecorder()
	handler.ServeList(rec, testutil.NewAuthenticatedRequest(t, "GET", "/influencers", nil, testutil.RegularUser()))

	rec.AssertStatus(t, http.StatusOK)
	var got []models.Influencer
	rec.DecodeJSON(t, &got)
	if len(got) != 2 || got[0].Name != "Al" || got[1].Name != "Bea" {
		t.Errorf("unexpected list: %+v", got)
	}
}

func TestServeList_EmptyIsArray(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	handler.ServeList(rec, testutil.NewAuthenticatedRequest(t, "GET", "/influencers", nil, testutil.RegularUser()))

	rec.AssertStatus(t, http.StatusOK)
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestServeOne(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inf := fixtures.CreateInfluencer(ctx, "Solo")

	tests := []struct {
		name string
		id   string
		want int
		msg  string
	}{
		{"found", inf.ID.Hex(), http.StatusOK, "Solo"},
		{"invalid id", "abc", http.StatusNotFound, "Invalid influencer ID format: abc"},
		{"missing", "507f1f77bcf86cd799439011", http.StatusNotFound, "Influencer with ID 507f1f77bcf86cd799439011 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(t, "GET", "/influencers/"+tt.id, nil, testutil.RegularUser())
			req = testutil.WithChiURLParam(req, "id", tt.id)
			rec := testutil.NewRecorder()
			handler.ServeOne(rec, req)

			rec.AssertStatus(t, tt.want)
			rec.AssertContains(t, tt.msg)
		})
	}
}

func TestHandleUpdate_Partial(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inf := fixtures.CreateInfluencer(ctx, "Before")

	req := testutil.NewAuthenticatedRequest(t, "PATCH", "/influencers/"+inf.ID.Hex(), map[string]any{"status": "rejected"}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", inf.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleUpdate(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var got models.Influencer
	rec.DecodeJSON(t, &got)
	if got.Status != models.InfluencerRejected {
		t.Errorf("Status = %q, want rejected", got.Status)
	}
	if got.Name != "Before" || got.Followers != inf.Followers {
		t.Errorf("unsubmitted fields changed: %+v", got)
	}
}

func TestHandleUpdate_RejectsEmptyName(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inf := fixtures.CreateInfluencer(ctx, "Keep")

	req := testutil.NewAuthenticatedRequest(t, "PATCH", "/influencers/"+inf.ID.Hex(), map[string]any{"name": "  "}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", inf.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleUpdate(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Name must not be empty.")
}

func TestHandleDelete(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inf := fixtures.CreateInfluencer(ctx, "Bye")
	campaign := fixtures.CreateCampaign(ctx, "Still linked")
	fixtures.CreateLink(ctx, campaign.ID, inf.ID, 10, 1)

	req := testutil.NewAuthenticatedRequest(t, "DELETE", "/influencers/"+inf.ID.Hex(), nil, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", inf.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleDelete(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Bye")

	// No cascade: the link survives.
	n, err := fixtures.DB().Collection("campaign_influencers").CountDocuments(ctx, bson.M{"influencer_id": inf.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected link to survive, got %d", n)
	}

	rec = testutil.NewRecorder()
	handler.HandleDelete(rec, testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest(t, "DELETE", "/influencers/"+inf.ID.Hex(), nil, testutil.AdminUser()),
		"id", inf.ID.Hex()))
	rec.AssertStatus(t, http.StatusNotFound)
}
