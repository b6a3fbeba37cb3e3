package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/internal/hr"
	"github.com/nrfta/listview-go/urlstate"
	"github.com/nrfta/listview-go/window"
)

const (
	paramSort = "sort"
	paramDesc = "desc"
)

// ListResponse is the JSON body of a list endpoint.
type ListResponse[T any] struct {
	Items       []T        `json:"items"`
	Page        int        `json:"page"`
	PageSize    int        `json:"pageSize"`
	TotalItems  int        `json:"totalItems"`
	TotalPages  int        `json:"totalPages"`
	HasNext     bool       `json:"hasNext"`
	HasPrevious bool       `json:"hasPrevious"`
	Tokens      []TokenDTO `json:"tokens"`

	// Query is the canonical query string of the served page.
	Query string `json:"query"`
}

// TokenDTO is a window.PageToken on the wire. Target is the page a click
// navigates to, so clients never compute ellipsis midpoints themselves.
type TokenDTO struct {
	Kind    string `json:"kind"`
	Number  int    `json:"number,omitempty"`
	Between []int  `json:"between,omitempty"`
	Target  int    `json:"target"`
	Current bool   `json:"current,omitempty"`
}

// EmployeeDTO is an employee on the wire.
type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	HiredOn    string `json:"hiredOn"`
}

// ExpenseDTO is an expense on the wire.
type ExpenseDTO struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amountCents"`
	Description string `json:"description"`
	SubmittedOn string `json:"submittedOn"`
}

func toEmployeeDTO(e *hr.Employee) (EmployeeDTO, error) {
	return EmployeeDTO{
		ID:         e.ID,
		Name:       e.FirstName + " " + e.LastName,
		Email:      e.Email,
		Department: e.Department,
		Title:      e.Title,
		Status:     e.Status,
		HiredOn:    e.HiredOn,
	}, nil
}

func toExpenseDTO(e *hr.Expense) (ExpenseDTO, error) {
	return ExpenseDTO{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Category:    e.Category,
		Status:      e.Status,
		AmountCents: e.AmountCents,
		Description: e.Description,
		SubmittedOn: e.SubmittedOn,
	}, nil
}

func listHandler[T, D any](s *Server, list hr.List[T], toDTO func(T) (D, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		values := c.Request.URL.Query()
		q := list.Codec.Decode(values)
		desc, _ := strconv.ParseBool(values.Get(paramDesc))

		page, err := list.Paginator(values.Get(paramSort), desc).FetchPage(c.Request.Context(), q)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list " + list.Name})
			return
		}

		out, err := listview.MapPage(page, toDTO)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render " + list.Name})
			return
		}

		c.JSON(http.StatusOK, newListResponse(s.window, list.Codec, q, out))
	}
}

func newListResponse[T any](calc window.Calculator, codec urlstate.Codec, q listview.Query, page *listview.Page[T]) ListResponse[T] {
	info := page.Info(q)

	return ListResponse[T]{
		Items:       page.Items,
		Page:        info.Page,
		PageSize:    info.PageSize,
		TotalItems:  info.TotalItems,
		TotalPages:  info.TotalPages,
		HasNext:     info.HasNextPage(),
		HasPrevious: info.HasPreviousPage(),
		Tokens:      toTokenDTOs(calc.Window(q.Page, info.TotalPages), q.Page, info.TotalPages),
		Query:       codec.Encode(q).Encode(),
	}
}

func toTokenDTOs(tokens []window.PageToken, current, total int) []TokenDTO {
	out := make([]TokenDTO, 0, len(tokens))
	for _, t := range tokens {
		dto := TokenDTO{Kind: t.Kind.String()}
		if t.IsEllipsis() {
			dto.Between = []int{t.Between[0], t.Between[1]}
		} else {
			dto.Number = t.Number
			dto.Current = t.Number == current
		}

		target, err := t.Target(total)
		if err != nil {
			continue
		}
		dto.Target = target
		out = append(out, dto)
	}
	return out
}

func (s *Server) getEmployee(repo *hr.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := repo.EmployeeByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, hr.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employee"})
			return
		}

		dto, _ := toEmployeeDTO(e)
		c.JSON(http.StatusOK, dto)
	}
}
