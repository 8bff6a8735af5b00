//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"credshop/internal/handler/api"
	resdto "credshop/internal/handler/dto/response"
	"credshop/internal/pkg/errs"
	"credshop/internal/usecase"
	"credshop/tests/common/builder"
	"credshop/tests/common/httptest"
	"credshop/tests/common/testutil"
	usecasemock "credshop/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCheckout *usecasemock.MockCheckoutUseCase
	handler      *api.CheckoutHandler
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = usecasemock.NewMockCheckoutUseCase(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCheckout)

	s.router.POST("/checkout", s.handler.Checkout)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

type testCaseCheckout struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	url := "/checkout"

	reqBody := builder.NewCheckoutBuilder().BuildRequestDTO()
	expectedResult := builder.NewCheckoutBuilder().BuildResult()

	s.Run("success: returns 201 Created with payment reference", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.True(resp.Success)
		s.Equal(expectedResult.OrderID, resp.ID)
		s.Equal(expectedResult.TransactionID, resp.TransactionID)
		s.Equal(expectedResult.AmountCents, resp.Amount)
	})

	s.Run("validation: malformed bodies are rejected before the usecase", func() {
		cases := []testCaseCheckout{
			{name: "missing field: items", mutate: testutil.Field("items", nil), expectCode: http.StatusBadRequest},
			{name: "empty items", mutate: testutil.Field("items", []any{}), expectCode: http.StatusBadRequest},
			{name: "missing field: customerInfo", mutate: testutil.Field("customerInfo", nil), expectCode: http.StatusBadRequest},
			{name: "negative discountAmount", mutate: testutil.Field("discountAmount", -100), expectCode: http.StatusBadRequest},
			{name: "zero quantity", mutate: testutil.Field("items", []any{map[string]any{"id": uuid.New().String(), "quantity": 0}}), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())

				var resp resdto.CheckoutFailureResponse
				s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &resp))
				s.False(resp.Success)
			})
		}
	})

	s.Run("booked units: returns 400 with isBookedError and the unit ids", func() {
		unitID := uuid.New()
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(nil, &usecase.UnavailableError{
				Reason:  usecase.ReasonBooked,
				UnitIDs: []uuid.UUID{unitID},
			}).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusBadRequest, rec.Code)
		var resp resdto.CheckoutFailureResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &resp))
		s.False(resp.Success)
		s.True(resp.IsBookedError)
		s.False(resp.IsInactiveError)
		s.False(resp.IsStockError)
		s.Equal([]string{unitID.String()}, resp.UnavailableItems)
	})

	s.Run("insufficient profiles: returns 400 with isStockError", func() {
		unitID := uuid.New()
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(nil, &usecase.UnavailableError{
				Reason:  usecase.ReasonNoProfiles,
				UnitIDs: []uuid.UUID{unitID},
			}).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusBadRequest, rec.Code)
		var resp resdto.CheckoutFailureResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &resp))
		s.True(resp.IsStockError)
		s.Equal([]string{unitID.String()}, resp.UnavailableItems)
	})

	s.Run("inactive units: returns 400 with isInactiveError", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(nil, &usecase.UnavailableError{
				Reason:  usecase.ReasonInactive,
				UnitIDs: []uuid.UUID{uuid.New()},
			}).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusBadRequest, rec.Code)
		var resp resdto.CheckoutFailureResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &resp))
		s.True(resp.IsInactiveError)
	})

	s.Run("invalid voucher: returns 400", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("voucher rejected"), errs.ErrInvalidVoucher)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("infrastructure failure: returns 500", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("connection refused"), errs.ErrDatabaseOperationFailed)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusInternalServerError, rec.Code)
		var resp resdto.CheckoutFailureResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &resp))
		s.False(resp.Success)
	})
}
