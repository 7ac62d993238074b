package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pashtetskiy/SimpleToDoWebApi/controllers"
)

// RegisterRoutes wires the ToDo endpoints onto the engine. The original API
// exposed {id} inside the final path segment; gin routes it as a dedicated
// :id segment instead.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, log *zap.SugaredLogger) {
	todoController := controllers.NewToDoController(db, log)

	todo := r.Group("/api/ToDo")
	{
		todo.GET("/getAll", todoController.GetAll)
		todo.GET("/getById/:id", todoController.GetByID)
		todo.GET("/search", todoController.Search)
		todo.GET("/incoming", todoController.Incoming)
		todo.POST("/create", todoController.Create)
		todo.POST("/markAsComplete", todoController.MarkAsComplete)
		todo.PUT("/update/:id", todoController.Update)
		todo.PUT("/setPercentComplete", todoController.SetPercentComplete)
		todo.DELETE("/Delete/:id", todoController.Delete)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
