package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSteps_RunInOrderAsNamedSubtests(t *testing.T) {
	var names []string
	record := func(t *testing.T) { names = append(names, t.Name()) }

	Given(t, "a store", record)
	When(t, "a record is appended", record)
	Then(t, "it is listed", record)
	And(t, "the total is one", record)

	assert.Equal(t, []string{
		t.Name() + "/Given_a_store",
		t.Name() + "/When_a_record_is_appended",
		t.Name() + "/Then_it_is_listed",
		t.Name() + "/And_the_total_is_one",
	}, names)
}
