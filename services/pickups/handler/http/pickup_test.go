package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/services/pickups"
	"github.com/piresc/pickups/services/pickups/dataset"
	"github.com/piresc/pickups/services/pickups/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    int             `json:"code"`
}

func newContext(method, target string, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewPickupHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockPickupUC(ctrl)

	handler := NewPickupHandler(mockUC)

	assert.NotNil(t, handler)
	assert.Equal(t, mockUC, handler.pickupUC)
}

func TestPickupHandler_GetDataset(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*mocks.MockPickupUC)
		expectedStatus int
	}{
		{
			name: "Success",
			mockSetup: func(mockUC *mocks.MockPickupUC) {
				mockUC.EXPECT().DatasetInfo(gomock.Any()).Return(&models.DatasetInfo{
					Version:  "v1",
					Source:   "uber.csv.gz",
					Rows:     100000,
					LoadedAt: time.Now(),
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not loaded",
			mockSetup: func(mockUC *mocks.MockPickupUC) {
				mockUC.EXPECT().DatasetInfo(gomock.Any()).Return(nil, pickups.ErrNotLoaded)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUC := mocks.NewMockPickupUC(ctrl)
			tt.mockSetup(mockUC)

			c, rec := newContext(http.MethodGet, "/api/v1/dataset", nil)
			err := NewPickupHandler(mockUC).GetDataset(c)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestPickupHandler_GetHours(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockPickupUC(ctrl)

	hist := make([]int, 24)
	hist[17] = 42
	mockUC.EXPECT().HourHistogram(gomock.Any()).Return(hist, nil)

	c, rec := newContext(http.MethodGet, "/api/v1/hours", nil)
	require.NoError(t, NewPickupHandler(mockUC).GetHours(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.True(t, body.Success)

	var data HoursResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Len(t, data.Hours, 24)
	assert.Equal(t, 23, data.Hours[23])
	assert.Equal(t, 42, data.Pickups[17])
}

func TestPickupHandler_GetHour(t *testing.T) {
	tests := []struct {
		name           string
		hour           string
		mockSetup      func(*mocks.MockPickupUC)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			hour: "17",
			mockSetup: func(mockUC *mocks.MockPickupUC) {
				mockUC.EXPECT().HourSnapshot(gomock.Any(), 17).Return(&models.HourSnapshot{
					Hour:     17,
					NextHour: 18,
					Pickups:  3,
					Midpoint: &models.Midpoint{Latitude: 40.75, Longitude: -73.98},
					Minutes:  make([]int, 60),
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not an integer",
			hour:           "five",
			mockSetup:      func(mockUC *mocks.MockPickupUC) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "hour must be an integer",
		},
		{
			name:           "Out of range",
			hour:           "24",
			mockSetup:      func(mockUC *mocks.MockPickupUC) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  pickups.ErrInvalidHour.Error(),
		},
		{
			name: "Not loaded",
			hour: "3",
			mockSetup: func(mockUC *mocks.MockPickupUC) {
				mockUC.EXPECT().HourSnapshot(gomock.Any(), 3).Return(nil, pickups.ErrNotLoaded)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  pickups.ErrNotLoaded.Error(),
		},
		{
			name: "Unexpected error",
			hour: "3",
			mockSetup: func(mockUC *mocks.MockPickupUC) {
				mockUC.EXPECT().HourSnapshot(gomock.Any(), 3).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to get hour snapshot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUC := mocks.NewMockPickupUC(ctrl)
			tt.mockSetup(mockUC)

			c, rec := newContext(http.MethodGet, "/api/v1/hours/"+tt.hour, map[string]string{"hour": tt.hour})
			require.NoError(t, NewPickupHandler(mockUC).GetHour(c))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decode(t, rec)
			if tt.expectedError != "" {
				assert.False(t, body.Success)
				assert.Equal(t, tt.expectedError, body.Error)
				return
			}

			var snapshot models.HourSnapshot
			require.NoError(t, json.Unmarshal(body.Data, &snapshot))
			assert.Equal(t, 3, snapshot.Pickups)
			assert.Equal(t, 18, snapshot.NextHour)
		})
	}
}

func TestPickupHandler_GetMinutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockPickupUC(ctrl)

	minutes := make([]int, 60)
	minutes[59] = 7
	mockUC.EXPECT().HourSnapshot(gomock.Any(), 23).Return(&models.HourSnapshot{Hour: 23, Minutes: minutes}, nil)

	c, rec := newContext(http.MethodGet, "/api/v1/hours/23/minutes", map[string]string{"hour": "23"})
	require.NoError(t, NewPickupHandler(mockUC).GetMinutes(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var data MinutesResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, "23:00 and 0:00", data.Label)
	assert.Len(t, data.Minutes, 60)
	assert.Equal(t, 7, data.Pickups[59])
}

func TestPickupHandler_GetRecords(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		mockSetup      func(*mocks.MockPickupUC)
		expectedStatus int
	}{
		{
			name:   "Defaults",
			target: "/api/v1/hours/17/records",
			mockSetup: func(mockUC *mocks.MockPickupUC) {
				mockUC.EXPECT().Records(gomock.Any(), 17, 0, 0).Return([]models.Pickup{{Latitude: 40.7}}, 1, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Paged",
			target: "/api/v1/hours/17/records?offset=10&limit=5",
			mockSetup: func(mockUC *mocks.MockPickupUC) {
				mockUC.EXPECT().Records(gomock.Any(), 17, 10, 5).Return([]models.Pickup{}, 12, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid limit",
			target:         "/api/v1/hours/17/records?limit=many",
			mockSetup:      func(mockUC *mocks.MockPickupUC) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Negative offset",
			target: "/api/v1/hours/17/records?offset=-1",
			mockSetup: func(mockUC *mocks.MockPickupUC) {
				mockUC.EXPECT().Records(gomock.Any(), 17, -1, 0).Return(nil, 0, pickups.ErrInvalidPage)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUC := mocks.NewMockPickupUC(ctrl)
			tt.mockSetup(mockUC)

			c, rec := newContext(http.MethodGet, tt.target, map[string]string{"hour": "17"})
			require.NoError(t, NewPickupHandler(mockUC).GetRecords(c))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestPickupHandler_ReloadDataset(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockPickupUC(ctrl)
		mockUC.EXPECT().LoadDataset(gomock.Any()).Return(&models.DatasetInfo{Version: "v2", Rows: 5}, nil)

		c, rec := newContext(http.MethodPost, "/internal/dataset/reload", nil)
		require.NoError(t, NewPickupHandler(mockUC).ReloadDataset(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var info models.DatasetInfo
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &info))
		assert.Equal(t, "v2", info.Version)
	})

	t.Run("Failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockPickupUC(ctrl)
		mockUC.EXPECT().LoadDataset(gomock.Any()).Return(nil, errors.New("download failed"))

		c, rec := newContext(http.MethodPost, "/internal/dataset/reload", nil)
		require.NoError(t, NewPickupHandler(mockUC).ReloadDataset(c))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "failed to reload dataset", decode(t, rec).Error)
	})
}

func TestPickupHandler_GetViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockPickupUC(ctrl)
	mockUC.EXPECT().Views().Return([]models.View{{Name: "all"}, {Name: "jfk"}})

	c, rec := newContext(http.MethodGet, "/api/v1/views", nil)
	require.NoError(t, NewPickupHandler(mockUC).GetViews(c))

	var views []models.View
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &views))
	assert.Len(t, views, 2)
}

func TestPickupHandler_ExportRecordsCSV(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockPickupUC(ctrl)
		mockUC.EXPECT().HourPickups(gomock.Any(), 7).Return([]models.Pickup{
			{PickupAt: time.Date(2014, 9, 1, 7, 5, 9, 0, time.UTC), Latitude: 40.7471, Longitude: -73.9815},
			{PickupAt: time.Date(2014, 9, 12, 7, 59, 0, 0, time.UTC), Latitude: 40.6449, Longitude: -73.7822},
		}, nil)

		c, rec := newContext(http.MethodGet, "/api/v1/hours/7/records.csv", map[string]string{"hour": "7"})
		require.NoError(t, NewPickupHandler(mockUC).ExportRecordsCSV(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "pickups-hour-07.csv")
		assert.Equal(t,
			"Date/Time,Lat,Lon\n9/1/2014 07:05:09,40.7471,-73.9815\n9/12/2014 07:59:00,40.6449,-73.7822\n",
			rec.Body.String())
	})

	t.Run("Zero-padded hour reads back through the loader", func(t *testing.T) {
		records := []models.Pickup{
			{PickupAt: time.Date(2014, 9, 1, 0, 1, 0, 0, time.UTC), Latitude: 40.7215, Longitude: -73.995},
			{PickupAt: time.Date(2014, 9, 30, 0, 59, 30, 0, time.UTC), Latitude: 40.7691, Longitude: -73.9633},
		}
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockPickupUC(ctrl)
		mockUC.EXPECT().HourPickups(gomock.Any(), 0).Return(records, nil)

		c, rec := newContext(http.MethodGet, "/api/v1/hours/0/records.csv", map[string]string{"hour": "0"})
		require.NoError(t, NewPickupHandler(mockUC).ExportRecordsCSV(c))
		assert.Contains(t, rec.Body.String(), "9/1/2014 00:01:00,")

		parsed, err := dataset.Parse(strings.NewReader(rec.Body.String()), 0)
		require.NoError(t, err)
		assert.Equal(t, records, parsed)
	})

	t.Run("Not loaded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockPickupUC(ctrl)
		mockUC.EXPECT().HourPickups(gomock.Any(), 7).Return(nil, pickups.ErrNotLoaded)

		c, rec := newContext(http.MethodGet, "/api/v1/hours/7/records.csv", map[string]string{"hour": "7"})
		require.NoError(t, NewPickupHandler(mockUC).ExportRecordsCSV(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
