package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrconsole/internal/leave"
	leaveerrors "hrconsole/internal/leave/errors"
	"hrconsole/internal/shared/listquery"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	SubmitFn  func(ctx context.Context, companyID, actorID, actorEmployeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	UpdateFn  func(ctx context.Context, companyID, actorEmployeeID, id string, privileged bool, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	ApproveFn func(ctx context.Context, companyID, actorID, id string, force bool) (leave.LeaveResponse, error)
	RejectFn  func(ctx context.Context, companyID, actorID, id, reason string) (leave.LeaveResponse, error)
	CancelFn  func(ctx context.Context, companyID, actorID, actorEmployeeID, id, reason string, privileged bool) (leave.LeaveResponse, error)
	GetAllFn  func(ctx context.Context, companyID string, params listquery.Params) ([]leave.LeaveResponse, int64, error)
	GetMineFn func(ctx context.Context, companyID, employeeID string, params listquery.Params) ([]leave.LeaveResponse, int64, error)
	GetByIDFn func(ctx context.Context, companyID, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, companyID, actorID, actorEmployeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.SubmitFn(ctx, companyID, actorID, actorEmployeeID, req)
}
func (f *fakeLeaveService) Update(ctx context.Context, companyID, actorEmployeeID, id string, privileged bool, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return f.UpdateFn(ctx, companyID, actorEmployeeID, id, privileged, req)
}
func (f *fakeLeaveService) Approve(ctx context.Context, companyID, actorID, id string, force bool) (leave.LeaveResponse, error) {
	return f.ApproveFn(ctx, companyID, actorID, id, force)
}
func (f *fakeLeaveService) Reject(ctx context.Context, companyID, actorID, id, reason string) (leave.LeaveResponse, error) {
	return f.RejectFn(ctx, companyID, actorID, id, reason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, companyID, actorID, actorEmployeeID, id, reason string, privileged bool) (leave.LeaveResponse, error) {
	return f.CancelFn(ctx, companyID, actorID, actorEmployeeID, id, reason, privileged)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, companyID string, params listquery.Params) ([]leave.LeaveResponse, int64, error) {
	return f.GetAllFn(ctx, companyID, params)
}
func (f *fakeLeaveService) GetMine(ctx context.Context, companyID, employeeID string, params listquery.Params) ([]leave.LeaveResponse, int64, error) {
	return f.GetMineFn(ctx, companyID, employeeID, params)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, companyID, id string) (leave.LeaveResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}

type handlerTestContext struct {
	w *httptest.ResponseRecorder
	c *gin.Context
}

func newHandlerTestContext(t *testing.T, method, url, body string) *handlerTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	c.Request = req

	return &handlerTestContext{w: w, c: c}
}

func (tc *handlerTestContext) asUser(companyID, userID, employeeID, role string) {
	tc.c.Set("company_id", companyID)
	tc.c.Set("user_id", userID)
	tc.c.Set("employee_id", employeeID)
	tc.c.Set("role", role)
}

func TestLeaveHandler_Submit(t *testing.T) {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	employeeID := uuid.NewString()
	leaveTypeID := uuid.NewString()

	t.Run("success own request", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, cID, aID, aeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, companyID, cID)
				assert.Equal(t, userID, aID)
				assert.Equal(t, employeeID, aeID)
				return leave.LeaveResponse{
					ID:            uuid.NewString(),
					RequestNumber: "LVR-000042",
					EmployeeID:    employeeID,
					Status:        leave.StatusPending,
				}, nil
			},
		}
		h := leave.NewHandler(svc)

		body := `{"leave_type_id":"` + leaveTypeID + `","start_date":"2025-03-10","end_date":"2025-03-12","reason":"family"}`
		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests", body)
		tc.asUser(companyID, userID, employeeID, "USER")

		h.Submit(tc.c)

		assert.Equal(t, http.StatusCreated, tc.w.Code)
		assert.Contains(t, tc.w.Body.String(), "LVR-000042")
		assert.Contains(t, tc.w.Body.String(), `"ok":true`)
	})

	t.Run("forbidden on behalf of another employee", func(t *testing.T) {
		called := false
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, cID, aID, aeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				called = true
				return leave.LeaveResponse{}, nil
			},
		}
		h := leave.NewHandler(svc)

		body := `{"employee_id":"` + uuid.NewString() + `","leave_type_id":"` + leaveTypeID + `","start_date":"2025-03-10","end_date":"2025-03-12"}`
		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests", body)
		tc.asUser(companyID, userID, employeeID, "USER")

		h.Submit(tc.c)

		assert.Equal(t, http.StatusForbidden, tc.w.Code)
		assert.False(t, called)
	})

	t.Run("privileged role may submit on behalf", func(t *testing.T) {
		otherEmployeeID := uuid.NewString()
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, cID, aID, aeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, otherEmployeeID, req.EmployeeID)
				return leave.LeaveResponse{EmployeeID: otherEmployeeID, Status: leave.StatusPending}, nil
			},
		}
		h := leave.NewHandler(svc)

		body := `{"employee_id":"` + otherEmployeeID + `","leave_type_id":"` + leaveTypeID + `","start_date":"2025-03-10","end_date":"2025-03-12"}`
		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests", body)
		tc.asUser(companyID, userID, employeeID, "HR")

		h.Submit(tc.c)

		assert.Equal(t, http.StatusCreated, tc.w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests", `{"start_date":"2025-03-10"}`)
		tc.asUser(companyID, userID, employeeID, "USER")

		h.Submit(tc.c)

		assert.Equal(t, http.StatusBadRequest, tc.w.Code)
		assert.Contains(t, tc.w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	requestID := uuid.NewString()

	t.Run("success without body defaults force to false", func(t *testing.T) {
		var gotForce bool
		svc := &fakeLeaveService{
			ApproveFn: func(ctx context.Context, cID, aID, id string, force bool) (leave.LeaveResponse, error) {
				gotForce = force
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests/"+requestID+"/approve", "")
		tc.asUser(companyID, userID, uuid.NewString(), "MANAGER")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Approve(tc.c)

		assert.Equal(t, http.StatusOK, tc.w.Code)
		assert.False(t, gotForce)
		assert.Contains(t, tc.w.Body.String(), leave.StatusApproved)
	})

	t.Run("success force approve after balance gate", func(t *testing.T) {
		var gotForce bool
		svc := &fakeLeaveService{
			ApproveFn: func(ctx context.Context, cID, aID, id string, force bool) (leave.LeaveResponse, error) {
				gotForce = force
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests/"+requestID+"/approve", `{"force":true}`)
		tc.asUser(companyID, userID, uuid.NewString(), "MANAGER")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Approve(tc.c)

		assert.Equal(t, http.StatusOK, tc.w.Code)
		assert.True(t, gotForce)
	})

	t.Run("insufficient balance maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApproveFn: func(ctx context.Context, cID, aID, id string, force bool) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests/"+requestID+"/approve", "")
		tc.asUser(companyID, userID, uuid.NewString(), "MANAGER")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Approve(tc.c)

		assert.Equal(t, http.StatusConflict, tc.w.Code)
		assert.Contains(t, tc.w.Body.String(), "INSUFFICIENT_BALANCE")
	})
}

func TestLeaveHandler_Cancel(t *testing.T) {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	employeeID := uuid.NewString()
	requestID := uuid.NewString()

	t.Run("success passes privileged flag", func(t *testing.T) {
		var gotPrivileged bool
		svc := &fakeLeaveService{
			CancelFn: func(ctx context.Context, cID, aID, aeID, id, reason string, privileged bool) (leave.LeaveResponse, error) {
				gotPrivileged = privileged
				assert.Equal(t, "plans changed", reason)
				return leave.LeaveResponse{ID: id, Status: leave.StatusCancelled}, nil
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests/"+requestID+"/cancel", `{"reason":"plans changed"}`)
		tc.asUser(companyID, userID, employeeID, "USER")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Cancel(tc.c)

		assert.Equal(t, http.StatusOK, tc.w.Code)
		assert.False(t, gotPrivileged)
	})

	t.Run("validation error without reason", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodPost, "/api/v1/leave-requests/"+requestID+"/cancel", `{}`)
		tc.asUser(companyID, userID, employeeID, "USER")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Cancel(tc.c)

		assert.Equal(t, http.StatusBadRequest, tc.w.Code)
	})
}

func TestLeaveHandler_GetById(t *testing.T) {
	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	requestID := uuid.NewString()

	t.Run("success owner sees own request", func(t *testing.T) {
		svc := &fakeLeaveService{
			GetByIDFn: func(ctx context.Context, cID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{ID: id, EmployeeID: employeeID, Status: leave.StatusPending}, nil
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodGet, "/api/v1/leave-requests/"+requestID, "")
		tc.asUser(companyID, uuid.NewString(), employeeID, "USER")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.GetById(tc.c)

		assert.Equal(t, http.StatusOK, tc.w.Code)
	})

	t.Run("forbidden for another employee's request", func(t *testing.T) {
		svc := &fakeLeaveService{
			GetByIDFn: func(ctx context.Context, cID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{ID: id, EmployeeID: uuid.NewString()}, nil
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodGet, "/api/v1/leave-requests/"+requestID, "")
		tc.asUser(companyID, uuid.NewString(), employeeID, "USER")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.GetById(tc.c)

		assert.Equal(t, http.StatusForbidden, tc.w.Code)
	})

	t.Run("privileged role sees any request", func(t *testing.T) {
		svc := &fakeLeaveService{
			GetByIDFn: func(ctx context.Context, cID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{ID: id, EmployeeID: uuid.NewString()}, nil
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodGet, "/api/v1/leave-requests/"+requestID, "")
		tc.asUser(companyID, uuid.NewString(), employeeID, "ADMIN")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.GetById(tc.c)

		assert.Equal(t, http.StatusOK, tc.w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeLeaveService{
			GetByIDFn: func(ctx context.Context, cID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodGet, "/api/v1/leave-requests/"+requestID, "")
		tc.asUser(companyID, uuid.NewString(), employeeID, "ADMIN")
		tc.c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.GetById(tc.c)

		assert.Equal(t, http.StatusNotFound, tc.w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	companyID := uuid.NewString()

	t.Run("success with pagination meta", func(t *testing.T) {
		svc := &fakeLeaveService{
			GetAllFn: func(ctx context.Context, cID string, params listquery.Params) ([]leave.LeaveResponse, int64, error) {
				assert.Equal(t, map[string]string{"status": "PENDING"}, params.Filters)
				return []leave.LeaveResponse{{ID: uuid.NewString(), Status: leave.StatusPending}}, 31, nil
			},
		}
		h := leave.NewHandler(svc)

		tc := newHandlerTestContext(t, http.MethodGet, "/api/v1/leave-requests?status=PENDING&page=2", "")
		tc.asUser(companyID, uuid.NewString(), uuid.NewString(), "HR")

		h.GetAll(tc.c)

		assert.Equal(t, http.StatusOK, tc.w.Code)
		assert.Contains(t, tc.w.Body.String(), `"total":31`)
		assert.Contains(t, tc.w.Body.String(), `"page":2`)
	})
}
