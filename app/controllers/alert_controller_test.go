package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CollectraHQ/Collectra/app/models"
)

func TestAlertVisibleTo(t *testing.T) {
	tests := []struct {
		name    string
		alert   models.Alert
		bankID  uint
		visible bool
	}{
		{
			name:    "own bank alert",
			alert:   models.Alert{BankID: 3},
			bankID:  3,
			visible: true,
		},
		{
			name:    "other bank alert is hidden",
			alert:   models.Alert{BankID: 3},
			bankID:  4,
			visible: false,
		},
		{
			name:    "system alert without bank is visible to everyone",
			alert:   models.Alert{BankID: 0, Type: models.ALERT_VARIANCE},
			bankID:  7,
			visible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, alertVisibleTo(&tt.alert, tt.bankID))
		})
	}
}
