package main

import (
	"github.com/gin-gonic/gin"

	"sheetEngine/contracts"
)

type ServiceContainer struct {
	ChangeDispatcher contracts.ChangeDispatcher
	SheetService     contracts.SheetService
	ApiController    contracts.ApiController
	Router           *gin.Engine
}

func BuildServiceContainer() ServiceContainer {
	container := ServiceContainer{}

	container.ChangeDispatcher = NewChangeDispatcher()
	container.SheetService = NewSheetRegistry(container.ChangeDispatcher)
	container.ApiController = NewApiController(container.SheetService, container.ChangeDispatcher)

	container.Router = SetupRouter(container.ApiController)

	return container
}
