package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
	"github.com/heartmarshall/megamarket-backend/internal/service/catalog"
)

// validate checks request shapes; semantic rules live in the catalog service.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the tag validators and converts their failures into a
// domain.ValidationError keyed by JSON field path.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Drop the root struct name from "importRequest.items[0].id".
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		fields = append(fields, domain.FieldError{Field: field, Message: fieldMessage(fe)})
	}
	return domain.NewValidationErrors(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "uuid":
		return "must be a UUID"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " element(s)"
	case "gte":
		return "must be >= " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type importRequest struct {
	Items      []importItemRequest `json:"items"      validate:"required,min=1,dive"`
	UpdateDate string              `json:"updateDate" validate:"required"`
}

type importItemRequest struct {
	ID       string  `json:"id"       validate:"required,uuid"`
	Name     string  `json:"name"     validate:"required"`
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
	Type     string  `json:"type"     validate:"required,oneof=OFFER CATEGORY"`
	Price    *int64  `json:"price"    validate:"omitempty,gte=0"`
}

func (r importRequest) toInput() (catalog.ImportInput, error) {
	ts, err := parseTimestamp(r.UpdateDate)
	if err != nil {
		return catalog.ImportInput{}, domain.NewValidationError("updateDate", "must be an ISO 8601 timestamp")
	}

	items := make([]catalog.ImportItem, 0, len(r.Items))
	for i, it := range r.Items {
		id, err := uuid.Parse(it.ID)
		if err != nil {
			return catalog.ImportInput{}, domain.NewValidationError(fmt.Sprintf("items[%d].id", i), "must be a UUID")
		}

		var parentID *uuid.UUID
		if it.ParentID != nil {
			p, err := uuid.Parse(*it.ParentID)
			if err != nil {
				return catalog.ImportInput{}, domain.NewValidationError(fmt.Sprintf("items[%d].parentId", i), "must be a UUID")
			}
			parentID = &p
		}

		items = append(items, catalog.ImportItem{
			ID:       id,
			Name:     it.Name,
			Type:     domain.ItemType(it.Type),
			ParentID: parentID,
			Price:    it.Price,
		})
	}

	return catalog.ImportInput{Items: items, UpdateDate: ts}, nil
}

// DecodeImport reads an /imports request body and converts it into service
// input. Shape and format problems come back as *domain.ValidationError.
func DecodeImport(r io.Reader) (catalog.ImportInput, error) {
	var req importRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return catalog.ImportInput{}, domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validateStruct(req); err != nil {
		return catalog.ImportInput{}, err
	}
	return req.toInput()
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

// shopUnit is an item with its subtree. Children is null for offers and an
// array, possibly empty, for categories.
type shopUnit struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	ParentID *string     `json:"parentId"`
	Type     string      `json:"type"`
	Price    *int64      `json:"price"`
	Date     string      `json:"date"`
	Children []*shopUnit `json:"children"`
}

// statisticUnit is a flat item or history row.
type statisticUnit struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
	Type     string  `json:"type"`
	Price    *int64  `json:"price"`
	Date     string  `json:"date"`
}

type statisticResponse struct {
	Items []statisticUnit `json:"items"`
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func newShopUnit(n *domain.ItemNode) *shopUnit {
	return &shopUnit{
		ID:       n.ID.String(),
		Name:     n.Name,
		ParentID: optionalID(n.ParentID),
		Type:     n.Type.String(),
		Price:    n.Price,
		Date:     formatTimestamp(n.UpdatedAt),
	}
}

// toShopUnit converts a materialized subtree without recursion.
func toShopUnit(root *domain.ItemNode) *shopUnit {
	type frame struct {
		node *domain.ItemNode
		unit *shopUnit
	}

	out := newShopUnit(root)
	stack := []frame{{root, out}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.node.Children == nil {
			continue
		}

		f.unit.Children = make([]*shopUnit, 0, len(f.node.Children))
		for _, child := range f.node.Children {
			u := newShopUnit(child)
			f.unit.Children = append(f.unit.Children, u)
			stack = append(stack, frame{child, u})
		}
	}
	return out
}

func itemToStatisticUnit(it domain.Item) statisticUnit {
	return statisticUnit{
		ID:       it.ID.String(),
		Name:     it.Name,
		ParentID: optionalID(it.ParentID),
		Type:     it.Type.String(),
		Price:    it.Price,
		Date:     formatTimestamp(it.UpdatedAt),
	}
}

func snapshotToStatisticUnit(s domain.ItemSnapshot) statisticUnit {
	return statisticUnit{
		ID:       s.ItemID.String(),
		Name:     s.Name,
		ParentID: optionalID(s.ParentID),
		Type:     s.Type.String(),
		Price:    s.Price,
		Date:     formatTimestamp(s.UpdatedAt),
	}
}
