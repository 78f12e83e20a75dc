package controllers

import (
	"errors"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateConstraint(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.ConstraintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := services.CreateConstraint(uid, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidConstraint) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, out)
}

func ListConstraints(c *gin.Context) {
	uid := c.GetUint("userID")
	includeInactive := c.DefaultQuery("include_inactive", "false") == "true"

	out, err := services.ListConstraints(uid, includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func UpdateConstraint(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.ConstraintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := services.UpdateConstraint(uid, id, input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "constraint not found"})
		case errors.Is(err, services.ErrInvalidConstraint):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, out)
}

func DeactivateConstraint(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeactivateConstraint(uid, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "constraint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
