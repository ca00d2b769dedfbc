package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/hydroline/hydroline/app/models"
	"github.com/hydroline/hydroline/app/services"
	gqlschema "github.com/hydroline/hydroline/pkg/graphql"
	"github.com/hydroline/hydroline/pkg/response"
)

// GraphQLController exposes the read-only catalog query endpoint for
// storefront clients that batch their reads.
type GraphQLController struct {
	schema graphql.Schema
}

// NewGraphQLController builds the catalog schema over the catalog service.
func NewGraphQLController(catalog *services.CatalogService) (*GraphQLController, error) {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"image":       &graphql.Field{Type: graphql.String},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.Int},
			"name":           &graphql.Field{Type: graphql.String},
			"path":           &graphql.Field{Type: graphql.String},
			"description":    &graphql.Field{Type: graphql.String},
			"price":          &graphql.Field{Type: graphql.Int},
			"discountPrice":  &graphql.Field{Type: graphql.Int},
			"deliveryCharge": &graphql.Field{Type: graphql.Int},
			"stock":          &graphql.Field{Type: graphql.Int},
			"discountPercent": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, _ := p.Source.(models.Product)
					return product.DiscountPercent(), nil
				},
			},
			"category": &graphql.Field{Type: categoryType},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"categoryId": &graphql.ArgumentConfig{Type: graphql.Int},
					"page":       &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					categoryID, _ := p.Args["categoryId"].(int)
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)
					products, _, err := catalog.List(uint(categoryID), page, limit)
					return products, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return catalog.Get(uint(id))
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Categories()
				},
			},
		},
	})

	schema, err := gqlschema.NewSchema(rootQuery)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Query executes one GraphQL document against the catalog schema.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         c.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
