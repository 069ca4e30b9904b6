package canteenapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	menu "canteenWeb/internal/modules/menu/domain"
	orders "canteenWeb/internal/modules/orders/domain"
	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/upload"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, server.Client())
}

func writeEnvelope(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClientForwardsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		writeEnvelope(w, http.StatusOK, map[string]any{
			"status":     "success",
			"statusCode": 200,
			"data":       []map[string]any{{"id": 3, "standName": "Bakso"}},
		})
	})

	stands, err := client.ListStands(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, stands, 1)
	require.Equal(t, "Bakso", stands[0].StandName)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Equal(t, "/stands", gotPath)
}

func TestClientMapsNotFoundToSentinel(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, map[string]any{
			"status":     "error",
			"statusCode": 404,
			"message":    "Stand not found",
		})
	})

	_, err := client.MyStand(context.Background(), "tok")
	require.Error(t, err)
	require.True(t, errors.Is(err, apierr.ErrNotFound))

	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, []string{"Stand not found"}, apiErr.Messages)
}

func TestClientNormalizesMessageLists(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, map[string]any{
			"status":     "error",
			"statusCode": 400,
			"message":    []string{"username is taken", " ", "password too weak"},
		})
	})

	_, err := client.SignUp(context.Background(), "budi", "secret123", "STUDENT")
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus())
	require.Equal(t, []string{"username is taken", "password too weak"}, apiErr.Messages)
	require.True(t, errors.Is(err, apierr.ErrBadRequest))
}

func TestClientTreatsBodyStatusAsFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"status":     "error",
			"statusCode": 403,
			"message":    "Forbidden resource",
		})
	})

	_, err := client.ListMenu(context.Background(), "tok")
	require.True(t, errors.Is(err, apierr.ErrForbidden))
}

func TestClientSendsMultipartMenuForm(t *testing.T) {
	t.Parallel()

	var fields map[string]string
	var photo []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/menu/7", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{}
		for key, values := range r.MultipartForm.Value {
			fields[key] = values[0]
		}
		file, _, err := r.FormFile("photo")
		require.NoError(t, err)
		photo, _ = io.ReadAll(file)
		writeEnvelope(w, http.StatusOK, map[string]any{
			"status":     "success",
			"statusCode": 200,
			"data":       map[string]any{"id": 7, "name": "Es Teh", "price": 5000, "type": "DRINK"},
		})
	})

	form := menu.Form{
		Name:  "Es Teh",
		Price: "5000",
		Type:  "DRINK",
		Photo: &upload.File{Filename: "teh.png", ContentType: "image/png", Content: []byte("png-bytes")},
	}
	item, err := client.UpdateMenu(context.Background(), "tok", 7, form)
	require.NoError(t, err)
	require.Equal(t, 7, item.ID)
	require.Equal(t, "Es Teh", fields["name"])
	require.Equal(t, "5000", fields["price"])
	require.Equal(t, "png-bytes", string(photo))
}

func TestClientPlaceOrderRequiresCreated(t *testing.T) {
	t.Parallel()

	var status atomic.Int32
	status.Store(http.StatusCreated)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req orders.PlaceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 2, req.StandID)
		code := int(status.Load())
		writeEnvelope(w, code, map[string]any{
			"status":     "success",
			"statusCode": code,
			"data":       map[string]any{"id": 11, "standId": 2, "status": "PENDING"},
		})
	})

	req := orders.PlaceRequest{StandID: 2, Items: []orders.PlaceItem{{MenuID: 1, Quantity: 2}}}
	order, err := client.PlaceOrder(context.Background(), "tok", req)
	require.NoError(t, err)
	require.Equal(t, 11, order.ID)

	status.Store(http.StatusOK)
	_, err = client.PlaceOrder(context.Background(), "tok", req)
	require.Error(t, err)
}

func TestClientDownloadsReceipt(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/5/receipt", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.Copy(w, strings.NewReader("%PDF-1.4"))
	})

	receipt, err := client.OrderReceipt(context.Background(), "tok", 5)
	require.NoError(t, err)
	require.Equal(t, "receipt-order-5.pdf", receipt.Filename)
	require.Equal(t, "application/pdf", receipt.ContentType)
	require.Equal(t, "%PDF-1.4", string(receipt.Content))
}

func TestClientReceiptFailureCarriesStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.OrderReceipt(context.Background(), "tok", 5)
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusInternalServerError, apiErr.HTTPStatus())
}

func TestClientAcceptsEmptySuccessBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteDiscount(context.Background(), "tok", 4))
}
