//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"slot-booking-manager/internal/domain/slot"
	"slot-booking-manager/internal/handler"
	"slot-booking-manager/internal/handler/api"
	resdto "slot-booking-manager/internal/handler/dto/response"
	"slot-booking-manager/internal/handler/httperr"
	"slot-booking-manager/internal/handler/middleware"
	"slot-booking-manager/internal/pkg/adminauth"
	"slot-booking-manager/internal/pkg/config"
	"slot-booking-manager/internal/pkg/errs"
	"slot-booking-manager/tests/common/builder"
	"slot-booking-manager/tests/common/httptest"
	"slot-booking-manager/tests/common/testutil"
	commandsmock "slot-booking-manager/tests/mock/commands"
	queriesmock "slot-booking-manager/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	adminPassword = "test-admin-password"
	wrongPassword = "not-the-password"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the production router around the given use cases.
func newTestRouter(t interface{ Fatalf(string, ...any) }, cfg config.Config, slotHandler *api.SlotHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	gate, err := adminauth.NewGate(cfg.Admin.Password)
	if err != nil {
		t.Fatalf("admin gate: %v", err)
	}
	if err := handler.NewRouter(
		router,
		cfg,
		discardLogger(),
		slotHandler,
		api.NewFrontendHandler(cfg),
		middleware.NewAdminMiddleware(gate),
	); err != nil {
		t.Fatalf("router: %v", err)
	}
	return router
}

type SlotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSlotCommands
	mockQueries  *queriesmock.MockSlotQueries
}

func (s *SlotHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSlotCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)

	cfg := config.NewTestConfig()
	cfg.Admin.Password = adminPassword
	s.router = newTestRouter(s.T(), cfg, api.NewSlotHandler(s.mockCommands, s.mockQueries, cfg))
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

type testCaseSlot struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

// ================================================================================
// TestBookSlot
// ================================================================================

func (s *SlotHandlerTestSuite) TestBookSlot() {
	url := "/book"
	b := builder.NewSlotBuilder()
	reqBody := b.BuildBookRequestDTO("Stefan")
	booked := b.AsBookedBy("Stefan").BuildDomain()

	validation := []testCaseSlot{
		{name: "missing id", mutate: testutil.Field("id", nil), expectCode: http.StatusBadRequest},
		{name: "nil id", mutate: testutil.Field("id", uuid.Nil.String()), expectCode: http.StatusBadRequest},
		{name: "malformed id", mutate: testutil.Field("id", "not-a-uuid"), expectCode: http.StatusBadRequest},
		{name: "missing client_name", mutate: testutil.Field("client_name", nil), expectCode: http.StatusBadRequest},
		{name: "empty client_name", mutate: testutil.Field("client_name", ""), expectCode: http.StatusBadRequest},
		{name: "client_name 21 chars", mutate: testutil.Field("client_name", strings.Repeat("a", 21)), expectCode: http.StatusBadRequest, expectInBody: "too long"},
		{name: "client_name with markup", mutate: testutil.Field("client_name", "<script>"), expectCode: http.StatusBadRequest, expectInBody: "invalid characters"},
	}

	s.Run("success: returns 200 with booked slot", func() {
		s.mockCommands.EXPECT().BookSlot(gomock.Any(), booked.ID, "Stefan").Return(booked, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var res resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("Timeslot booked successfully", res.Message)
		s.Require().NotNil(res.Slot)
		s.False(res.Slot.Available)
		s.Equal("Stefan", res.Slot.BookerName)
	})

	s.Run("success: client_name at 20 chars with unicode letters", func() {
		name := strings.Repeat("ü", 20)
		s.mockCommands.EXPECT().BookSlot(gomock.Any(), booked.ID, name).Return(booked, nil).Times(1)

		body := testutil.RequestMap(s.T(), reqBody, testutil.Field("client_name", name))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	for _, tc := range validation {
		s.Run("validation: "+tc.name, func() {
			body := testutil.RequestMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			if tc.expectInBody != "" {
				s.Contains(rec.Body.String(), tc.expectInBody)
			}
		})
	}

	s.Run("validation: malformed JSON", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, "{not json", "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	domainErrors := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "already booked", err: errs.ErrAlreadyBooked, expectCode: http.StatusConflict, expectMsg: httperr.MsgSlotAlreadyBooked},
		{name: "not found", err: errs.ErrSlotNotFound, expectCode: http.StatusNotFound, expectMsg: httperr.MsgSlotNotFound},
		{name: "passed", err: errs.ErrSlotPassed, expectCode: http.StatusConflict, expectMsg: httperr.MsgSlotPassed},
		{name: "unexpected", err: errors.New("boom"), expectCode: http.StatusInternalServerError, expectMsg: httperr.MsgInternal},
	}
	for _, tc := range domainErrors {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().BookSlot(gomock.Any(), booked.ID, "Stefan").Return(slot.Slot{}, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}

	s.Run("admin header is not required", func() {
		s.mockCommands.EXPECT().BookSlot(gomock.Any(), booked.ID, "Stefan").Return(booked, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, wrongPassword)
		s.Equal(http.StatusOK, rec.Code)
	})
}

// ================================================================================
// TestAddSlot
// ================================================================================

func (s *SlotHandlerTestSuite) TestAddSlot() {
	url := "/add"
	b := builder.NewSlotBuilder()
	reqBody := b.BuildAddRequestDTO()
	added := b.BuildDomain()

	s.Run("success: returns 201 with the new slot", func() {
		s.mockCommands.EXPECT().
			AddSlot(gomock.Any(), gomock.Any(), "Intro to Python").
			DoAndReturn(func(_ any, when time.Time, _ string) (slot.Slot, error) {
				s.True(when.Equal(added.When))
				return added, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, adminPassword)

		var res resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Require().NotNil(res.Slot)
		s.Equal(added.ID, res.Slot.ID)
		s.True(res.Slot.Available)
	})

	unauthorized := []struct {
		name      string
		password  string
		expectMsg string
	}{
		{name: "missing credentials", password: "", expectMsg: "Missing credentials"},
		{name: "wrong credentials", password: wrongPassword, expectMsg: "Unauthorized"},
	}
	for _, tc := range unauthorized {
		s.Run("auth: "+tc.name, func() {
			// no AddSlot expectation: gomock fails the test if the handler runs
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, tc.password)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, tc.expectMsg)
		})
	}

	validation := []testCaseSlot{
		{name: "missing datetime", mutate: testutil.Field("datetime", nil), expectCode: http.StatusBadRequest},
		{name: "malformed datetime", mutate: testutil.Field("datetime", "tomorrow"), expectCode: http.StatusBadRequest},
		{name: "missing notes", mutate: testutil.Field("notes", nil), expectCode: http.StatusBadRequest},
		{name: "notes 82 chars", mutate: testutil.Field("notes", strings.Repeat("n", 82)), expectCode: http.StatusBadRequest},
		{name: "notes with quote", mutate: testutil.Field("notes", "it's"), expectCode: http.StatusBadRequest},
	}
	for _, tc := range validation {
		s.Run("validation: "+tc.name, func() {
			body := testutil.RequestMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, adminPassword)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
		})
	}

	s.Run("success: notes at 81 chars with newline and currency", func() {
		notes := strings.Repeat("n", 76) + "\n5€ $"
		s.mockCommands.EXPECT().AddSlot(gomock.Any(), gomock.Any(), notes).Return(added, nil).Times(1)

		body := testutil.RequestMap(s.T(), reqBody, testutil.Field("notes", notes))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, adminPassword)
		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	})

	s.Run("error: coordinator validation is a 400 with the rule message", func() {
		s.mockCommands.EXPECT().AddSlot(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(slot.Slot{}, errs.Mark(slot.ErrMissingSlotInstant, errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, adminPassword)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, slot.ErrMissingSlotInstant.Error())
	})
}

// ================================================================================
// TestRemoveSlot / TestRemoveAllSlots / TestAdminPage
// ================================================================================

func (s *SlotHandlerTestSuite) TestRemoveSlot() {
	url := "/remove"
	reqBody := builder.NewSlotBuilder().BuildRemoveRequestDTO()

	s.Run("success", func() {
		s.mockCommands.EXPECT().RemoveSlot(gomock.Any(), reqBody.ID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, reqBody, adminPassword)

		var res resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("Timeslot removed successfully", res.Message)
	})

	s.Run("not found", func() {
		s.mockCommands.EXPECT().RemoveSlot(gomock.Any(), reqBody.ID).Return(errs.ErrSlotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, reqBody, adminPassword)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, httperr.MsgSlotNotFound)
	})

	s.Run("missing credentials", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Missing credentials")
	})

	s.Run("missing id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, map[string]any{}, adminPassword)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *SlotHandlerTestSuite) TestRemoveAllSlots() {
	url := "/remove_all"

	s.Run("success", func() {
		s.mockCommands.EXPECT().RemoveAllSlots(gomock.Any()).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminPassword)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("wrong credentials", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, wrongPassword)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *SlotHandlerTestSuite) TestAdminPage() {
	testCases := []struct {
		name       string
		password   string
		expectCode int
	}{
		{name: "accepted", password: adminPassword, expectCode: http.StatusOK},
		{name: "missing", password: "", expectCode: http.StatusUnauthorized},
		{name: "wrong", password: wrongPassword, expectCode: http.StatusUnauthorized},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin_page", nil, tc.password)
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}

// ================================================================================
// TestListSlots / health
// ================================================================================

func (s *SlotHandlerTestSuite) TestListSlots() {
	s.Run("returns slots in table order", func() {
		first := builder.NewSlotBuilder().BuildDomain()
		second := builder.NewSlotBuilder().WithWhen(first.When.Add(time.Hour)).AsBookedBy("Alice").BuildDomain()
		s.mockQueries.EXPECT().ListSlots(gomock.Any()).Return([]slot.Slot{first, second}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/slots", nil, "")

		var res []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 2)
		s.Equal(first.ID, res[0].ID)
		s.Equal("Alice", res[1].BookerName)
	})

	s.Run("empty table is an empty array", func() {
		s.mockQueries.EXPECT().ListSlots(gomock.Any()).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/slots", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})
}

func (s *SlotHandlerTestSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")

	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("ok", body["status"])
}
