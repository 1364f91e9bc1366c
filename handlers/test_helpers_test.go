package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/hooks"
	"github.com/Katlego909/bizprint/testhelpers"
)

// newHandlerApp builds a test app with the record hooks registered against
// recording fakes, since handlers rely on the create hooks to assign order
// and design request references.
func newHandlerApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := testhelpers.NewTestApp(t)
	hooks.Register(app, &testhelpers.RecordingSender{}, &testhelpers.RecordingMailer{})
	return app
}

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newAuthedRequestEvent is newTestRequestEvent with an authenticated record.
func newAuthedRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder, auth *core.Record) *core.RequestEvent {
	e := newTestRequestEvent(app, req, rec)
	e.Auth = auth
	return e
}

// createTestSuperuser creates a record in the superusers auth collection.
func createTestSuperuser(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(core.CollectionNameSuperusers)
	if err != nil {
		t.Fatalf("failed to find superusers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("email", "admin@example.com")
	record.Set("password", "admin-password-123")
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save superuser: %v", err)
	}
	return record
}
