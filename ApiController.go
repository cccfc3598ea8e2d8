package main

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sheetEngine/contracts"
)

type ApiController struct {
	SheetService     contracts.SheetService
	ChangeDispatcher contracts.ChangeDispatcher
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

type SetCellRequest struct {
	Value string `json:"value" binding:"required"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"required,url"`
}

func NewApiController(sheetService contracts.SheetService, changeDispatcher contracts.ChangeDispatcher) *ApiController {
	return &ApiController{
		SheetService:     sheetService,
		ChangeDispatcher: changeDispatcher,
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetService.GetCell(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.CellNotFoundError) || errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.InvalidPositionError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		response, err = api.SheetService.SetCell(params.SheetId, params.CellId, request.Value)
	}

	if err != nil {
		// rejected edits are no-ops: report the attempted value back
		if response == nil {
			response = &contracts.Cell{}
		}
		response.Value = request.Value
		response.Result = err.Error()
		c.JSON(http.StatusUnprocessableEntity, response)
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) ClearCellAction(c *gin.Context) {
	params := CellEndpointParams{}

	err := c.ShouldBindUri(&params)

	if err == nil {
		err = api.SheetService.ClearCell(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	switch c.DefaultQuery("view", "cells") {
	case "cells":
		var response *contracts.CellList
		response, err = api.SheetService.GetCellList(params.SheetId)
		api.renderSheetView(c, err, func() {
			c.JSON(http.StatusOK, response)
		})

	case "size":
		var response contracts.Size
		response, err = api.SheetService.GetPrintableSize(params.SheetId)
		api.renderSheetView(c, err, func() {
			c.JSON(http.StatusOK, response)
		})

	case "values":
		var out bytes.Buffer
		err = api.SheetService.PrintValues(params.SheetId, &out)
		api.renderSheetView(c, err, func() {
			c.String(http.StatusOK, out.String())
		})

	case "texts":
		var out bytes.Buffer
		err = api.SheetService.PrintTexts(params.SheetId, &out)
		api.renderSheetView(c, err, func() {
			c.String(http.StatusOK, out.String())
		})

	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown view"})
	}
}

func (api *ApiController) renderSheetView(c *gin.Context, err error, render func()) {
	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		render()
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	pos, ok := contracts.PositionFromString(strings.ToUpper(params.CellId))
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": contracts.InvalidPositionError.Error()})
		return
	}

	api.ChangeDispatcher.SetWebhookUrl(canonicalSheetId(params.SheetId), pos.String(), request.WebhookUrl)

	c.JSON(http.StatusCreated, gin.H{"webhook_url": request.WebhookUrl})
}
