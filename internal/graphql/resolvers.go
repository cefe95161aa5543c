package graphql

import (
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/auth"
	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/metrics"
	"github.com/prn-tf/package-catalog/internal/service"
)

// Resolver implements every query and mutation. Resolvers never return a
// Go error for business failures; those travel inside the envelope so
// clients see one uniform shape. A non-nil error here would surface as a
// top-level GraphQL error, which is reserved for malformed requests.
type Resolver struct {
	users    *service.UserService
	packages *service.PackageService
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewResolver creates a Resolver. metrics may be nil when collection is
// disabled.
func NewResolver(users *service.UserService, packages *service.PackageService, m *metrics.Metrics, logger zerolog.Logger) *Resolver {
	return &Resolver{
		users:    users,
		packages: packages,
		metrics:  m,
		logger:   logger.With().Str("component", "graphql").Logger(),
	}
}

func (r *Resolver) observe(operation string, start time.Time, ok bool) {
	r.metrics.ObserveOperation(operation, ok, time.Since(start))
}

// getAllPackages lists the packages visible to the caller: admins see
// every record with the owner resolved, standard users see only their own.
func (r *Resolver) getAllPackages(p graphql.ResolveParams) (interface{}, error) {
	start := time.Now()
	caller := auth.IdentityFromContext(p.Context)

	var filter auth.ListFilter
	if raw, ok := p.Args["filter"].(map[string]interface{}); ok {
		filter.ExpirationDate = optionalTime(raw, "expirationDate")
		filter.ExpirationDateBefore = optionalTime(raw, "expirationDateBefore")
		filter.ExpirationDateAfter = optionalTime(raw, "expirationDateAfter")
	}

	packages, err := r.packages.List(p.Context, caller, filter)
	if err != nil {
		r.observe("getAllPackages", start, false)
		return packageListFailure(err), nil
	}
	if packages == nil {
		packages = []*domain.Package{}
	}

	r.observe("getAllPackages", start, true)
	return &PackageListResponse{
		Status:  true,
		Message: "Packages retrieved successfully",
		Data:    packages,
	}, nil
}

// getSinglePackage fetches one package by ID. Lookup by ID is open to any
// caller, authenticated or not.
func (r *Resolver) getSinglePackage(p graphql.ResolveParams) (interface{}, error) {
	start := time.Now()

	id, err := parsePackageID(p.Args["id"])
	if err != nil {
		r.observe("getSinglePackage", start, false)
		return &PackageResponse{Status: false, Message: "Invalid package id", Code: CodeValidationFailed}, nil
	}

	pkg, err := r.packages.Get(p.Context, id)
	if err != nil {
		r.observe("getSinglePackage", start, false)
		return packageFailure(err, ""), nil
	}

	r.observe("getSinglePackage", start, true)
	return &PackageResponse{
		Status:  true,
		Message: "Package retrieved successfully",
		Data:    pkg,
	}, nil
}

func (r *Resolver) createPackage(p graphql.ResolveParams) (interface{}, error) {
	start := time.Now()
	caller := auth.IdentityFromContext(p.Context)
	request := p.Args["request"].(map[string]interface{})

	input := service.CreatePackageInput{
		Name:        stringArg(request, "name"),
		Description: stringArg(request, "description"),
		Price:       floatArg(request, "price"),
	}
	if t, ok := request["expirationDate"].(time.Time); ok {
		input.ExpirationDate = t
	}

	pkg, err := r.packages.Create(p.Context, caller, input)
	if err != nil {
		r.observe("createPackage", start, false)
		return packageFailure(err, "create"), nil
	}

	r.observe("createPackage", start, true)
	return &PackageResponse{
		Status:  true,
		Message: "Package created successfully",
		Data:    pkg,
	}, nil
}

func (r *Resolver) updatePackage(p graphql.ResolveParams) (interface{}, error) {
	start := time.Now()
	caller := auth.IdentityFromContext(p.Context)

	id, err := parsePackageID(p.Args["id"])
	if err != nil {
		r.observe("updatePackage", start, false)
		return &PackageResponse{Status: false, Message: "Invalid package id", Code: CodeValidationFailed}, nil
	}

	request := p.Args["request"].(map[string]interface{})
	patch := domain.PackagePatch{
		Name:        optionalString(request, "name"),
		Description: optionalString(request, "description"),
		Price:       optionalFloat(request, "price"),
	}

	pkg, err := r.packages.Update(p.Context, caller, id, patch)
	if err != nil {
		r.observe("updatePackage", start, false)
		return packageFailure(err, "update"), nil
	}

	r.observe("updatePackage", start, true)
	return &PackageResponse{
		Status:  true,
		Message: "Package updated successfully",
		Data:    pkg,
	}, nil
}

func (r *Resolver) deletePackage(p graphql.ResolveParams) (interface{}, error) {
	start := time.Now()
	caller := auth.IdentityFromContext(p.Context)

	id, err := parsePackageID(p.Args["id"])
	if err != nil {
		r.observe("deletePackage", start, false)
		return &PackageResponse{Status: false, Message: "Invalid package id", Code: CodeValidationFailed}, nil
	}

	pkg, err := r.packages.Delete(p.Context, caller, id)
	if err != nil {
		r.observe("deletePackage", start, false)
		return packageFailure(err, "delete"), nil
	}

	r.observe("deletePackage", start, true)
	return &PackageResponse{
		Status:  true,
		Message: "Package deleted successfully",
		Data:    pkg,
	}, nil
}

// createUser registers a new account. The created user is never echoed
// back; success carries a null data field.
func (r *Resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	start := time.Now()
	request := p.Args["request"].(map[string]interface{})

	input := service.RegisterInput{
		Username: stringArg(request, "userName"),
		Password: stringArg(request, "password"),
		Role:     domain.Role(stringArg(request, "userType")),
	}

	if err := r.users.Register(p.Context, input); err != nil {
		r.observe("createUser", start, false)
		return packageFailure(err, ""), nil
	}

	r.observe("createUser", start, true)
	return &PackageResponse{
		Status:  true,
		Message: "User created successfully",
	}, nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	start := time.Now()
	request := p.Args["request"].(map[string]interface{})

	token, err := r.users.Login(p.Context, stringArg(request, "userName"), stringArg(request, "password"))
	if err != nil {
		r.observe("login", start, false)
		return loginFailure(err), nil
	}

	r.observe("login", start, true)
	return &LoginResponse{
		Status:  true,
		Message: "Login successful",
		Data:    &Token{Token: token},
	}, nil
}

func parsePackageID(arg interface{}) (uuid.UUID, error) {
	s, _ := arg.(string)
	return uuid.Parse(s)
}

func stringArg(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func floatArg(m map[string]interface{}, key string) float64 {
	f, _ := m[key].(float64)
	return f
}

func optionalString(m map[string]interface{}, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func optionalFloat(m map[string]interface{}, key string) *float64 {
	if f, ok := m[key].(float64); ok {
		return &f
	}
	return nil
}

func optionalTime(m map[string]interface{}, key string) *time.Time {
	if t, ok := m[key].(time.Time); ok {
		return &t
	}
	return nil
}
