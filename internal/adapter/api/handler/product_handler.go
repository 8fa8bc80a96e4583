package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"shophop/internal/usecase"
	"shophop/pkg/errors"
	"shophop/pkg/response"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type productRequest struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Description string          `json:"description"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), userID, usecase.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid product ID", err))
	}

	// withReviews=true returns the product together with its reviews.
	if c.QueryParam("withReviews") == "true" {
		product, err := h.productUseCase.GetProductWithReviews(c.Request().Context(), uint(id))
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, product)
	}

	product, err := h.productUseCase.GetProduct(c.Request().Context(), uint(id))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	lastID, _ := strconv.ParseUint(c.QueryParam("lastId"), 10, 32)
	amount, _ := strconv.Atoi(c.QueryParam("amount"))

	products, total, err := h.productUseCase.GetPage(c.Request().Context(), uint(lastID), amount)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"items": products,
		"total": total,
	})
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	userID := c.Get("uid").(string)

	products, err := h.productUseCase.ListBySeller(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid product ID", err))
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), uint(id), userID, usecase.UpdateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid product ID", err))
	}

	userID := c.Get("uid").(string)

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), uint(id), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, nil)
}
