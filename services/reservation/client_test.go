package reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookRequest() models.BookMonthlyRequest {
	return models.BookMonthlyRequest{
		TutorID:    "tutor-1",
		SubjectID:  "subject-1",
		LanguageID: "lang-1",
		Patterns: []models.SlotPattern{
			{ID: "p1", DayOfWeek: 5, StartTime: "10:00", EndTime: "11:00"},
		},
		StartDate: "2024-03-15",
		EndDate:   "2024-03-31",
	}
}

func TestBookMonthly(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/bookings/monthly", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

			var req models.BookMonthlyRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "tutor-1", req.TutorID)

			json.NewEncoder(w).Encode(models.BookMonthlyResponse{Success: true, HoldID: "hold-9"})
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, "secret")
		resp, err := client.BookMonthly(context.Background(), bookRequest())
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "hold-9", resp.HoldID)
	})

	t.Run("Partial Rejection Is Not An Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(models.BookMonthlyResponse{
				Success:     false,
				FailedSlots: []models.FailedSlot{{DayOfWeek: 5, Time: "10:00", Reason: "booked"}},
			})
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, "")
		resp, err := client.BookMonthly(context.Background(), bookRequest())
		require.NoError(t, err)
		assert.False(t, resp.Success)
		require.Len(t, resp.FailedSlots, 1)
		assert.Equal(t, "booked", resp.FailedSlots[0].Reason)
	})

	t.Run("Server Fault Is An Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, "")
		_, err := client.BookMonthly(context.Background(), bookRequest())
		assert.Error(t, err)
	})
}

func TestRelease(t *testing.T) {
	t.Run("Releases Hold", func(t *testing.T) {
		var calledPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calledPath = r.URL.Path
			assert.Equal(t, http.MethodDelete, r.Method)
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, "")
		require.NoError(t, client.Release(context.Background(), "hold-9"))
		assert.Equal(t, "/v1/holds/hold-9", calledPath)
	})

	t.Run("Already Lapsed Hold Is Fine", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, "")
		assert.NoError(t, client.Release(context.Background(), "hold-9"))
	})
}
