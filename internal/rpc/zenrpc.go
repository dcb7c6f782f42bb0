package rpc

// Invoke and SMD for HeadlinesService in the shape zenrpc emits. Keep the
// method table, argument names and schemas in step with headlines.go.

import (
	"context"
	"encoding/json"

	"github.com/vmkteam/zenrpc/v2"
	"github.com/vmkteam/zenrpc/v2/smd"
)

var RPC = struct {
	HeadlinesService struct{ Categories, Fetch string }
}{
	HeadlinesService: struct{ Categories, Fetch string }{
		Categories: "categories",
		Fetch:      "fetch",
	},
}

func (HeadlinesService) SMD() smd.ServiceInfo {
	return smd.ServiceInfo{
		Methods: map[string]smd.Service{
			"Categories": {
				Description: `Categories returns the selectable categories in display order.`,
				Parameters:  []smd.JSONSchema{},
				Returns: smd.JSONSchema{
					Description: `list of categories`,
					Type:        smd.Array,
					Items: map[string]string{
						"$ref": "#/definitions/Category",
					},
					Definitions: map[string]smd.Definition{
						"Category": {
							Type: "object",
							Properties: smd.PropertyList{
								{
									Name: "token",
									Type: smd.String,
								},
								{
									Name: "label",
									Type: smd.String,
								},
							},
						},
					},
				},
			},
			"Fetch": {
				Description: `Fetch loads the top headlines of one category, in upstream order.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "category",
						Optional:    true,
						Description: `category token, empty means no filter`,
						Type:        smd.String,
					},
					{
						Name:        "country",
						Optional:    true,
						Description: `two-letter country code, empty means the configured one`,
						Type:        smd.String,
					},
				},
				Returns: smd.JSONSchema{
					Description: `headlines of the category`,
					Optional:    true,
					Type:        smd.Object,
					Properties: smd.PropertyList{
						{
							Name: "category",
							Type: smd.String,
						},
						{
							Name:     "country",
							Optional: true,
							Type:     smd.String,
						},
						{
							Name: "articles",
							Type: smd.Array,
							Items: map[string]string{
								"$ref": "#/definitions/Article",
							},
						},
					},
					Definitions: map[string]smd.Definition{
						"Article": {
							Type: "object",
							Properties: smd.PropertyList{
								{
									Name: "title",
									Type: smd.String,
								},
								{
									Name:        "description",
									Description: `null when the source sent none`,
									Optional:    true,
									Type:        smd.String,
								},
								{
									Name: "url",
									Type: smd.String,
								},
							},
						},
					},
				},
				Errors: map[int]string{
					400: "invalid category or country",
					502: "upstream error",
					504: "upstream unreachable",
				},
			},
		},
	}
}

// Invoke is as generated code from zenrpc cmd
func (s HeadlinesService) Invoke(ctx context.Context, method string, params json.RawMessage) zenrpc.Response {
	resp := zenrpc.Response{}
	var err error

	switch method {
	case RPC.HeadlinesService.Categories:
		resp.Set(s.Categories(ctx))

	case RPC.HeadlinesService.Fetch:
		var args = struct {
			Category string `json:"category"`
			Country  string `json:"country"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"category", "country"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.Fetch(ctx, args.Category, args.Country))

	default:
		resp = zenrpc.NewResponseError(nil, zenrpc.MethodNotFound, "", nil)
	}

	return resp
}
