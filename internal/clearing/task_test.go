package clearing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_FinishOnce(t *testing.T) {
	task := newTask("t1")
	assert.Nil(t, task.Err())

	first := errors.New("first")
	task.finish(first)
	task.finish(errors.New("second"))

	<-task.Done()
	assert.Equal(t, first, task.Err())
	assert.Equal(t, first, task.Wait(context.Background()))
}
