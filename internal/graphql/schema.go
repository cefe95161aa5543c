package graphql

import (
	"github.com/graphql-go/graphql"
)

// userType deliberately exposes only public account fields. The password
// hash has no place in the API.
var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"userType": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var packageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Package",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"expirationDate": &graphql.Field{Type: graphql.NewNonNull(dateType)},
		"userId":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		// Populated only on admin list queries; null otherwise.
		"owner":     &graphql.Field{Type: userType},
		"createdAt": &graphql.Field{Type: dateType},
		"updatedAt": &graphql.Field{Type: dateType},
	},
})

var tokenType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Token",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

// Every operation answers with the same envelope shape: status, message,
// a stable machine-readable code, and the operation-specific data.
var packageResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PackageResponse",
	Fields: graphql.Fields{
		"status":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"code":    &graphql.Field{Type: graphql.String},
		"data":    &graphql.Field{Type: packageType},
	},
})

var packageListResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PackageListResponse",
	Fields: graphql.Fields{
		"status":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"code":    &graphql.Field{Type: graphql.String},
		"data":    &graphql.Field{Type: graphql.NewList(packageType)},
	},
})

var loginResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LoginResponse",
	Fields: graphql.Fields{
		"status":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"code":    &graphql.Field{Type: graphql.String},
		"data":    &graphql.Field{Type: tokenType},
	},
})

var createPackageInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "createPackageInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"price":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"expirationDate": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(dateType)},
	},
})

var updatePackageInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "updatePackageInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

var createUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "createUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"userName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"userType": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var loginInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "loginInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"userName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var packageFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PackageFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"expirationDate":       &graphql.InputObjectFieldConfig{Type: dateType},
		"expirationDateBefore": &graphql.InputObjectFieldConfig{Type: dateType},
		"expirationDateAfter":  &graphql.InputObjectFieldConfig{Type: dateType},
	},
})

// NewSchema builds the executable schema around the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getAllPackages": &graphql.Field{
				Type: packageListResponseType,
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: packageFilterInput},
				},
				Resolve: r.getAllPackages,
			},
			"getSinglePackage": &graphql.Field{
				Type: packageResponseType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.getSinglePackage,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createPackage": &graphql.Field{
				Type: packageResponseType,
				Args: graphql.FieldConfigArgument{
					"request": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createPackageInput)},
				},
				Resolve: r.createPackage,
			},
			"updatePackage": &graphql.Field{
				Type: packageResponseType,
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"request": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updatePackageInput)},
				},
				Resolve: r.updatePackage,
			},
			"deletePackage": &graphql.Field{
				Type: packageResponseType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.deletePackage,
			},
			"createUser": &graphql.Field{
				Type: packageResponseType,
				Args: graphql.FieldConfigArgument{
					"request": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createUserInput)},
				},
				Resolve: r.createUser,
			},
			"login": &graphql.Field{
				Type: loginResponseType,
				Args: graphql.FieldConfigArgument{
					"request": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
				},
				Resolve: r.login,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
