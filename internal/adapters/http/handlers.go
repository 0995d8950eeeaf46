package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/supanat00/yaochaigym-data-record/internal/adapters/http/middleware"
	noticeStore "github.com/supanat00/yaochaigym-data-record/internal/adapters/storage/notice"
	"github.com/supanat00/yaochaigym-data-record/internal/application/orchestrators"
	"github.com/supanat00/yaochaigym-data-record/internal/application/projections"
	"github.com/supanat00/yaochaigym-data-record/internal/domain/account"
	"github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
	noticeDomain "github.com/supanat00/yaochaigym-data-record/internal/domain/notice"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// todayUTC is a variable for testability; anchors all entitlement projections.
var todayUTC = dates.TodayUTC

// validate checks struct tags on JSON payloads.
var validate = validator.New()

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON encodes v to the response with a JSON content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// apiError writes the JSON error envelope used by all API endpoints.
func apiError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

// validationError writes a 400 envelope with a per-field error map.
func validationError(w http.ResponseWriter, err error) {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": "validation failed",
		"errors":  fields,
	})
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	username := ""
	if ok {
		role = sess.Role
		username = sess.Username
	}

	funcMap := template.FuncMap{
		"currentRole":     func() string { return role },
		"currentUsername": func() string { return username },
		"isLoggedIn":      func() bool { return role != "" },
		"isAdmin":         func() bool { return role == account.RoleAdmin },
		"csrfToken":       func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"noticeColorHex": func(color string) string {
			if hex, ok := noticeDomain.ColorHex[color]; ok {
				return hex
			}
			return noticeDomain.ColorHex[noticeDomain.ColorOrange]
		},
		"tierClass": func(tier string) string {
			return "tier-" + tier
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// requireSession returns the session or writes 401.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		apiError(w, http.StatusUnauthorized, "not authenticated")
		return middleware.Session{}, false
	}
	return sess, true
}

// requireAdmin returns the session or writes 401/403.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := requireSession(w, r)
	if !ok {
		return middleware.Session{}, false
	}
	if sess.Role != account.RoleAdmin {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", account.RoleAdmin)
		apiError(w, http.StatusForbidden, "forbidden")
		return middleware.Session{}, false
	}
	return sess, true
}

// registerRoutes attaches all application routes to the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/change-password", handleChangePassword)
	mux.HandleFunc("/dashboard", handleDashboard)

	mux.HandleFunc("/api/customers", handleCustomers)
	mux.HandleFunc("/api/customers/", handleCustomerItem)
	mux.HandleFunc("/api/compensation", handleCompensation)
	mux.HandleFunc("/api/notices", handleNotices)
	mux.HandleFunc("/api/notices/", handleNoticeItem)
	mux.HandleFunc("/api/accounts", handleAccounts)
	mux.HandleFunc("/api/reports/expiry-email", handleExpiryDigest)
	mux.HandleFunc("/api/perf", handlePerf)
}

// handleIndex redirects the root to the dashboard.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to dashboard
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Username: r.FormValue("Username"),
			Password: r.FormValue("Password"),
		}

		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		token, err := sessions.Create(result.AccountID, result.Username, result.Role)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		if err := middleware.SetSessionCookie(w, token); err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token, ok := middleware.SessionTokenFromRequest(r); ok {
		sessions.Delete(token)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleChangePassword handles GET (form) and POST (update) for /change-password
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "change_password.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}

		if r.FormValue("NewPassword") != r.FormValue("ConfirmPassword") {
			renderTemplate(w, r, "change_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "New passwords do not match",
			})
			return
		}

		input := orchestrators.ChangePasswordInput{
			AccountID:       session.AccountID,
			CurrentPassword: r.FormValue("CurrentPassword"),
			NewPassword:     r.FormValue("NewPassword"),
		}
		deps := orchestrators.ChangePasswordDeps{
			AccountStore: stores.AccountStore,
		}

		if err := orchestrators.ExecuteChangePassword(r.Context(), input, deps); err != nil {
			renderTemplate(w, r, "change_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDashboard handles GET /dashboard — the three-tab customer list.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tab := r.URL.Query().Get("tab")
	courseType := ""
	switch tab {
	case "monthly":
		courseType = customer.CourseMonthly
	case "per-session":
		courseType = customer.CoursePerSession
	}

	result, err := projections.QueryGetCustomerList(r.Context(),
		projections.GetCustomerListQuery{CourseType: courseType, Today: todayUTC()},
		projections.GetCustomerListDeps{CustomerStore: stores.CustomerStore})
	if err != nil {
		internalError(w, err)
		return
	}

	notices, err := stores.NoticeStore.List(r.Context(), noticeStore.ListFilter{Status: noticeDomain.StatusPublished})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "get_customer_list.html", map[string]any{
		"Customers": result.Customers,
		"Tab":       tab,
		"Notices":   notices,
		"Username":  sess.Username,
	})
}

// customerInputError reports whether err is a bad-input rejection from the
// customer domain, as opposed to a storage failure.
func customerInputError(err error) bool {
	for _, target := range []error{
		customer.ErrEmptyName,
		customer.ErrNameTooLong,
		customer.ErrInvalidPhone,
		customer.ErrInvalidCourseType,
		customer.ErrInvalidStartDate,
		customer.ErrEmptyPackage,
		customer.ErrNegativeSessions,
		customer.ErrNegativeComp,
		customer.ErrUnresolvableEndDate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// customerPayload is the JSON body for register and update.
type customerPayload struct {
	FullName          string `json:"FullName" validate:"required"`
	Phone             string `json:"Phone"`
	CourseType        string `json:"CourseType" validate:"required,oneof=รายเดือน รายครั้ง"`
	StartDate         string `json:"StartDate" validate:"required,datetime=2006-01-02"`
	DurationOrPackage string `json:"DurationOrPackage" validate:"required"`
	ManualEndDate     string `json:"ManualEndDate" validate:"omitempty,datetime=2006-01-02"`
	CompensationDays  int    `json:"CompensationDays" validate:"min=0"`
	RemainingSessions *int   `json:"RemainingSessions" validate:"omitempty,min=0"`
	BonusSessions     *int   `json:"BonusSessions" validate:"omitempty,min=0"`
}

// Validate checks the structural rules on the payload.
func (p *customerPayload) Validate() error {
	return validate.Struct(p)
}

// customerPayloadFromForm maps an HTML form submission onto the payload.
func customerPayloadFromForm(r *http.Request) customerPayload {
	p := customerPayload{
		FullName:          r.FormValue("FullName"),
		Phone:             r.FormValue("Phone"),
		CourseType:        r.FormValue("CourseType"),
		StartDate:         r.FormValue("StartDate"),
		DurationOrPackage: r.FormValue("DurationOrPackage"),
		ManualEndDate:     r.FormValue("ManualEndDate"),
	}
	if v := r.FormValue("CompensationDays"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.CompensationDays = n
		}
	}
	if v := r.FormValue("RemainingSessions"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.RemainingSessions = &n
		}
	}
	if v := r.FormValue("BonusSessions"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.BonusSessions = &n
		}
	}
	return p
}

// handleCustomers handles GET (list) and POST (register) for /api/customers
func handleCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		courseType := r.URL.Query().Get("course")
		result, err := projections.QueryGetCustomerList(ctx,
			projections.GetCustomerListQuery{CourseType: courseType, Today: todayUTC()},
			projections.GetCustomerListDeps{CustomerStore: stores.CustomerStore})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result.Customers)
		return
	}

	if r.Method == "POST" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		isHTML := isHTMLRequest(r)

		var p customerPayload
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			p = customerPayloadFromForm(r)
		} else {
			if err := strictDecode(r, &p); err != nil {
				apiError(w, http.StatusBadRequest, "invalid JSON")
				return
			}
		}
		if err := p.Validate(); err != nil {
			validationError(w, err)
			return
		}

		input := orchestrators.RegisterCustomerInput{
			FullName:          p.FullName,
			Phone:             p.Phone,
			CourseType:        p.CourseType,
			StartDate:         p.StartDate,
			DurationOrPackage: p.DurationOrPackage,
			RemainingSessions: p.RemainingSessions,
			BonusSessions:     p.BonusSessions,
		}
		result, err := orchestrators.ExecuteRegisterCustomer(ctx, input, orchestrators.RegisterCustomerDeps{
			CustomerStore: stores.CustomerStore,
			Now:           todayUTC,
		})
		if customerInputError(err) {
			apiError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTML {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, result)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleCustomerItem routes /api/customers/{id} and /api/customers/{id}/checkin
func handleCustomerItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/customers/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		handleCustomerByID(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "checkin":
		handleCustomerCheckIn(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

// handleCustomerByID handles PUT (edit/renew) and DELETE for /api/customers/{id}
func handleCustomerByID(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	if _, ok := requireSession(w, r); !ok {
		return
	}

	if r.Method == "PUT" {
		var p customerPayload
		if err := strictDecode(r, &p); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if err := p.Validate(); err != nil {
			validationError(w, err)
			return
		}

		input := orchestrators.UpdateCustomerInput{
			CustomerID:            id,
			FullName:              p.FullName,
			Phone:                 p.Phone,
			CourseType:            p.CourseType,
			StartDate:             p.StartDate,
			DurationOrPackage:     p.DurationOrPackage,
			ManualEndDate:         p.ManualEndDate,
			TotalCompensationDays: p.CompensationDays,
			RemainingSessions:     p.RemainingSessions,
			BonusSessions:         p.BonusSessions,
		}
		err := orchestrators.ExecuteUpdateCustomer(ctx, input, orchestrators.UpdateCustomerDeps{
			CustomerStore: stores.CustomerStore,
		})
		if errors.Is(err, orchestrators.ErrCustomerNotFound) {
			apiError(w, http.StatusNotFound, err.Error())
			return
		}
		if customerInputError(err) {
			apiError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method == "DELETE" {
		result, err := orchestrators.ExecuteDeleteCustomer(ctx, id, orchestrators.DeleteCustomerDeps{
			CustomerStore: stores.CustomerStore,
		})
		if errors.Is(err, orchestrators.ErrCustomerNotFound) {
			apiError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleCustomerCheckIn handles POST /api/customers/{id}/checkin
func handleCustomerCheckIn(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	result, err := orchestrators.ExecuteCheckInCustomer(r.Context(), id, orchestrators.CheckInCustomerDeps{
		CustomerStore: stores.CustomerStore,
		Now:           todayUTC,
	})
	switch {
	case errors.Is(err, orchestrators.ErrCustomerNotFound):
		apiError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, customer.ErrNotPerSession), errors.Is(err, customer.ErrNoSessionsLeft):
		apiError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// compensationPayload is the JSON body for a bulk compensation grant.
type compensationPayload struct {
	DaysToAdd int      `json:"DaysToAdd" validate:"required,min=1,max=14"`
	Mode      string   `json:"Mode" validate:"required,oneof=all-eligible selected-customers"`
	TargetIDs []string `json:"TargetIDs"`
}

// Validate checks the structural rules on the payload.
func (p *compensationPayload) Validate() error {
	return validate.Struct(p)
}

// handleCompensation handles POST /api/compensation
func handleCompensation(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	var p compensationPayload
	if err := strictDecode(r, &p); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := p.Validate(); err != nil {
		validationError(w, err)
		return
	}

	result, err := orchestrators.ExecuteApplyCompensation(r.Context(), orchestrators.ApplyCompensationInput{
		DaysToAdd: p.DaysToAdd,
		Mode:      p.Mode,
		TargetIDs: p.TargetIDs,
	}, orchestrators.ApplyCompensationDeps{
		CustomerStore: stores.CustomerStore,
		Now:           todayUTC,
	})
	if err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleNotices handles GET (list) and POST (create) for /api/notices
func handleNotices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		filter := noticeStore.ListFilter{Status: r.URL.Query().Get("status")}
		results, err := stores.NoticeStore.List(ctx, filter)
		if err != nil {
			internalError(w, err)
			return
		}
		if results == nil {
			results = []noticeDomain.Notice{}
		}
		writeJSON(w, http.StatusOK, results)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		var input struct {
			Title   string `json:"Title"`
			Content string `json:"Content"`
			Color   string `json:"Color"`
			Pinned  bool   `json:"Pinned"`
		}
		if err := strictDecode(r, &input); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		n, err := orchestrators.ExecuteCreateNotice(ctx, orchestrators.CreateNoticeInput{
			Title:     input.Title,
			Content:   input.Content,
			Color:     input.Color,
			Pinned:    input.Pinned,
			CreatedBy: sess.AccountID,
		}, orchestrators.CreateNoticeDeps{
			NoticeStore: stores.NoticeStore,
			GenerateID:  generateID,
			Now:         timeNow,
		})
		if err != nil {
			apiError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, n)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleNoticeItem routes /api/notices/{id}, /{id}/publish and /{id}/pin
func handleNoticeItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/notices/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	ctx := r.Context()

	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	if len(parts) == 1 && parts[0] != "" {
		if r.Method != "DELETE" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		err := orchestrators.ExecuteDeleteNotice(ctx, orchestrators.DeleteNoticeInput{NoticeID: parts[0]},
			orchestrators.DeleteNoticeDeps{NoticeStore: stores.NoticeStore})
		if errors.Is(err, orchestrators.ErrNoticeNotFound) {
			apiError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if len(parts) == 2 {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch parts[1] {
		case "publish":
			n, err := orchestrators.ExecutePublishNotice(ctx, orchestrators.PublishNoticeInput{NoticeID: parts[0]},
				orchestrators.PublishNoticeDeps{NoticeStore: stores.NoticeStore, Now: timeNow})
			if errors.Is(err, orchestrators.ErrNoticeNotFound) {
				apiError(w, http.StatusNotFound, err.Error())
				return
			}
			if err != nil {
				apiError(w, http.StatusConflict, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, n)
			return
		case "pin":
			var input struct {
				Pinned bool `json:"Pinned"`
			}
			if err := strictDecode(r, &input); err != nil {
				apiError(w, http.StatusBadRequest, "invalid JSON")
				return
			}
			n, err := orchestrators.ExecutePinNotice(ctx, orchestrators.PinNoticeInput{NoticeID: parts[0], Pinned: input.Pinned},
				orchestrators.PinNoticeDeps{NoticeStore: stores.NoticeStore})
			if errors.Is(err, orchestrators.ErrNoticeNotFound) {
				apiError(w, http.StatusNotFound, err.Error())
				return
			}
			if err != nil {
				internalError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, n)
			return
		}
	}

	http.NotFound(w, r)
}

// handleAccounts handles POST (create staff account) for /api/accounts
func handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var input struct {
		Username string `json:"Username" validate:"required,min=3"`
		Password string `json:"Password" validate:"required"`
		Role     string `json:"Role" validate:"required,oneof=admin staff"`
	}
	if err := strictDecode(r, &input); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(&input); err != nil {
		validationError(w, err)
		return
	}

	id, err := orchestrators.ExecuteCreateAccount(r.Context(), orchestrators.CreateAccountInput{
		Username: input.Username,
		Password: input.Password,
		Role:     input.Role,
	}, orchestrators.CreateAccountDeps{
		AccountStore: stores.AccountStore,
	})
	if errors.Is(err, orchestrators.ErrUsernameAlreadyExists) {
		apiError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"AccountID": id})
}

// handleExpiryDigest handles POST /api/reports/expiry-email
func handleExpiryDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if emailSender == nil {
		apiError(w, http.StatusServiceUnavailable, "email sending is not configured")
		return
	}

	result, err := orchestrators.ExecuteSendExpiryDigest(r.Context(), orchestrators.SendExpiryDigestInput{
		From:  emailFromAddress,
		To:    digestRecipients,
		Today: todayUTC(),
	}, orchestrators.SendExpiryDigestDeps{
		CustomerStore: stores.CustomerStore,
		Sender:        emailSender,
	})
	if errors.Is(err, orchestrators.ErrNoRecipient) {
		apiError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePerf handles GET /api/perf — aggregated timing stats for admins.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if perfCollector == nil {
		apiError(w, http.StatusServiceUnavailable, "perf collection is not enabled")
		return
	}

	since := timeNow().Add(-1 * time.Hour)
	if v := r.URL.Query().Get("minutes"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins > 0 {
			since = timeNow().Add(-time.Duration(mins) * time.Minute)
		}
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, 10))
}
