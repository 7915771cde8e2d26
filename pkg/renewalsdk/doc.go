/*
Package renewalsdk is a Go client for the renewal tracking API.

The request and response types in this package are also the wire types of
the server, so the client and the handlers cannot drift apart.

	client := renewalsdk.NewClient("https://renewal.example.com", accessToken)

	contracts, err := client.ListContracts(ctx, "active")
	summary, err := client.DashboardSummary(ctx)

Errors from the API are returned as *APIError and can be matched with
errors.Is:

	if errors.Is(err, renewalsdk.ErrPlanLimit) { ... }

Organization-scoped calls use a client bound to the organization:

	org := client.WithOrganization(orgID)
	invite, err := org.CreateInvitation(ctx, renewalsdk.InvitationRequest{Email: "a@example.com", Role: "member"})
*/
package renewalsdk
