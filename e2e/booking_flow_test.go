package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_CompleteBookingJourney はイベント作成から予約確定までの一連のフローをテスト
func TestE2E_CompleteBookingJourney(t *testing.T) {
	server := NewTestServer(t)

	var eventID, seatID string

	// 1. イベント作成
	t.Run("イベント作成", func(t *testing.T) {
		body := map[string]interface{}{
			"name":  "年末コンサート",
			"venue": "市民ホール",
			"date":  "2026-12-31T18:00:00Z",
		}
		rec := server.Request(http.MethodPost, "/api/v1/events", body)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		eventID = resp["id"].(string)
		require.NotEmpty(t, eventID)
	})

	// 2. 座席グリッド作成（2行×3席 = A1..A3, B1..B3）
	t.Run("座席グリッド作成", func(t *testing.T) {
		body := map[string]interface{}{
			"rows":          2,
			"seats_per_row": 3,
		}
		rec := server.Request(http.MethodPost, fmt.Sprintf("/api/v1/events/%s/seats/grid", eventID), body)

		require.Equal(t, http.StatusCreated, rec.Code)

		var seats []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seats))
		require.Len(t, seats, 6)
		assert.Equal(t, "A1", seats[0]["seat_number"])
		seatID = seats[0]["id"].(string)
	})

	// 3. 座席一覧は行・番号順で全席空席
	t.Run("座席一覧取得", func(t *testing.T) {
		rec := server.Request(http.MethodGet, fmt.Sprintf("/api/v1/events/%s/seats", eventID), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var seats []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seats))
		require.Len(t, seats, 6)
		assert.Equal(t, "A1", seats[0]["seat_number"])
		assert.Equal(t, "B3", seats[5]["seat_number"])
		for _, s := range seats {
			assert.False(t, s["booked"].(bool))
		}
	})

	// 4. 空席数は6
	t.Run("空席数取得", func(t *testing.T) {
		rec := server.Request(http.MethodGet, fmt.Sprintf("/api/v1/events/%s/seats/available/count", eventID), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 6, resp["count"])
	})

	// 5. 座席を予約
	t.Run("座席予約", func(t *testing.T) {
		body := map[string]string{"customer_name": "山田太郎"}
		rec := server.Request(http.MethodPost, fmt.Sprintf("/api/v1/seats/%s/book", seatID), body)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["booking_id"])
		assert.Equal(t, seatID, resp["seat_id"])
		assert.Equal(t, "A1", resp["seat_number"])
		assert.Equal(t, "山田太郎", resp["customer_name"])
	})

	// 6. 同じ座席の再予約は409
	t.Run("予約済み座席の再予約は409", func(t *testing.T) {
		body := map[string]string{"customer_name": "佐藤花子"}
		rec := server.Request(http.MethodPost, fmt.Sprintf("/api/v1/seats/%s/book", seatID), body)

		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["message"])
	})

	// 7. 空席数は5に減る
	t.Run("予約後の空席数", func(t *testing.T) {
		rec := server.Request(http.MethodGet, fmt.Sprintf("/api/v1/events/%s/seats/available/count", eventID), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 5, resp["count"])
	})

	// 8. イベント一覧に座席の予約状況が反映される
	t.Run("イベント一覧に予約状況が反映", func(t *testing.T) {
		rec := server.Request(http.MethodGet, "/api/v1/events", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var events []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
		require.Len(t, events, 1)

		seats := events[0]["seats"].([]interface{})
		require.Len(t, seats, 6)
		first := seats[0].(map[string]interface{})
		assert.Equal(t, "A1", first["seat_number"])
		assert.True(t, first["booked"].(bool))
	})

	// 9. イベントの予約一覧に含まれる
	t.Run("予約一覧取得", func(t *testing.T) {
		rec := server.Request(http.MethodGet, fmt.Sprintf("/api/v1/events/%s/bookings", eventID), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var bookings []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
		require.Len(t, bookings, 1)
		assert.Equal(t, "山田太郎", bookings[0]["customer_name"])
	})
}

// TestE2E_BookingValidation は予約時のバリデーションをテスト
func TestE2E_BookingValidation(t *testing.T) {
	server := NewTestServer(t)

	// 準備: イベントと座席
	rec := server.Request(http.MethodPost, "/api/v1/events", map[string]interface{}{
		"name":  "テストイベント",
		"venue": "第二ホール",
		"date":  "2026-06-01T19:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
	eventID := ev["id"].(string)

	rec = server.Request(http.MethodPost, fmt.Sprintf("/api/v1/events/%s/seats/grid", eventID),
		map[string]interface{}{"rows": 1, "seats_per_row": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	var seats []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seats))
	seatID := seats[0]["id"].(string)

	t.Run("顧客名が空の場合は400", func(t *testing.T) {
		rec := server.Request(http.MethodPost, fmt.Sprintf("/api/v1/seats/%s/book", seatID),
			map[string]string{"customer_name": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("空白のみの顧客名も400", func(t *testing.T) {
		rec := server.Request(http.MethodPost, fmt.Sprintf("/api/v1/seats/%s/book", seatID),
			map[string]string{"customer_name": "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("存在しない座席は404", func(t *testing.T) {
		rec := server.Request(http.MethodPost, "/api/v1/seats/no-such-seat/book",
			map[string]string{"customer_name": "山田太郎"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("バリデーション失敗後も座席は空席のまま", func(t *testing.T) {
		rec := server.Request(http.MethodGet, fmt.Sprintf("/api/v1/events/%s/seats/available/count", eventID), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp["count"])
	})
}

// TestE2E_ConcurrentBooking は同一座席への同時予約で勝者がちょうど1人であることをテスト
func TestE2E_ConcurrentBooking(t *testing.T) {
	server := NewTestServer(t)

	rec := server.Request(http.MethodPost, "/api/v1/events", map[string]interface{}{
		"name":  "人気公演",
		"venue": "大ホール",
		"date":  "2026-09-01T18:30:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
	eventID := ev["id"].(string)

	rec = server.Request(http.MethodPost, fmt.Sprintf("/api/v1/events/%s/seats/grid", eventID),
		map[string]interface{}{"rows": 1, "seats_per_row": 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	var seats []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seats))
	seatID := seats[0]["id"].(string)

	const customers = 20
	codes := make([]int, customers)

	var wg sync.WaitGroup
	for i := 0; i < customers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := server.Request(http.MethodPost, fmt.Sprintf("/api/v1/seats/%s/book", seatID),
				map[string]string{"customer_name": fmt.Sprintf("顧客%d", i)})
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	won, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			won++
		case http.StatusConflict:
			conflicts++
		default:
			t.Errorf("unexpected status code: %d", code)
		}
	}

	assert.Equal(t, 1, won, "勝者はちょうど1人")
	assert.Equal(t, customers-1, conflicts, "残りは全員409")

	// 予約一覧にも1件だけ
	rec = server.Request(http.MethodGet, fmt.Sprintf("/api/v1/events/%s/bookings", eventID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bookings []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	assert.Len(t, bookings, 1)
}
