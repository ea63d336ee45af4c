package grpc

import (
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/auth"
)

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// AuthPolicy is the role policy for CreditService. Merchants reach only
// their own customer's score, originations and dashboard; obligation-keyed
// writes and the due scan are reserved for staff.
func AuthPolicy() auth.Policy {
	staff := []string{auth.RoleAdmin, auth.RoleOperator}
	anyone := []string{auth.RoleAdmin, auth.RoleOperator, auth.RoleMerchant}
	return auth.Policy{
		Roles: map[string][]string{
			fullMethod("CalculateScore"):          anyone,
			fullMethod("GetLatestScore"):          anyone,
			fullMethod("ListScoreHistory"):        anyone,
			fullMethod("OriginateNetTerms"):       anyone,
			fullMethod("OriginateWorkingCapital"): anyone,
			fullMethod("OriginateRevenueBased"):   anyone,
			fullMethod("ListObligations"):         anyone,
			fullMethod("GetDashboard"):            anyone,
			fullMethod("RecordPayment"):           staff,
			fullMethod("PaySupplier"):             staff,
			fullMethod("GetObligation"):           staff,
			fullMethod("ScanPaymentsDue"):         {auth.RoleAdmin},
		},
		Public: []string{
			"/" + healthpb.Health_ServiceDesc.ServiceName + "/Check",
			"/" + healthpb.Health_ServiceDesc.ServiceName + "/Watch",
		},
	}
}
