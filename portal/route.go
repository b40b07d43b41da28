package portal

import (
	"net/url"
	"strings"

	"github.com/viant/signoff/model"
)

// Portal API routes.
const (
	RouteCurrentClient   = "/api/portal/currentClient"
	RouteLogin           = "/api/auth/login"
	RoutePayouts         = "/api/portal/payouts"
	RoutePayout          = "/api/portal/payouts/{id}"
	RoutePayoutAuthorize = "/api/portal/payouts/{id}/authorize/true"
	RouteSalaries        = "/api/portal/salaries"
	RouteSalaryAuthorize = "/api/portal/salaries/authorize"
	RouteInvoices        = "/api/portal/invoices"
)

func expand(route string, id model.ID) string {
	return strings.Replace(route, "{id}", url.PathEscape(id.String()), 1)
}
