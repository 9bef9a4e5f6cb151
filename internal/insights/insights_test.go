package insights

import (
	"reflect"
	"sync"
	"testing"
)

func TestTracker_Observe(t *testing.T) {
	tracker := NewTracker()

	tracker.Observe("lidar/front/scans")
	tracker.Observe("lidar/front/scans")
	tracker.Observe("camera/rear/frames")
	tracker.Observe("odd-topic")

	snap := tracker.Snapshot()

	if snap.Total != 4 {
		t.Errorf("Total = %d, want 4", snap.Total)
	}
	if snap.Topics["lidar/front/scans"].Count != 2 {
		t.Errorf("lidar/front/scans count = %d, want 2", snap.Topics["lidar/front/scans"].Count)
	}
	if snap.Topics["odd-topic"].Count != 1 {
		t.Errorf("odd-topic count = %d, want 1", snap.Topics["odd-topic"].Count)
	}

	wantAgents := []string{"camera", "lidar", "odd-topic"}
	if !reflect.DeepEqual(snap.AgentTypes, wantAgents) {
		t.Errorf("AgentTypes = %v, want %v", snap.AgentTypes, wantAgents)
	}
	wantGroups := []string{"front", "rear"}
	if !reflect.DeepEqual(snap.GroupOrIDs, wantGroups) {
		t.Errorf("GroupOrIDs = %v, want %v", snap.GroupOrIDs, wantGroups)
	}
	wantPlugs := []string{"frames", "scans"}
	if !reflect.DeepEqual(snap.PlugNames, wantPlugs) {
		t.Errorf("PlugNames = %v, want %v", snap.PlugNames, wantPlugs)
	}
}

func TestTracker_EmptySnapshot(t *testing.T) {
	snap := NewTracker().Snapshot()

	if snap.Total != 0 {
		t.Errorf("Total = %d, want 0", snap.Total)
	}
	if len(snap.Topics) != 0 {
		t.Errorf("Topics = %v, want empty", snap.Topics)
	}
	if len(snap.AgentTypes) != 0 || len(snap.GroupOrIDs) != 0 || len(snap.PlugNames) != 0 {
		t.Error("segment sets not empty for fresh tracker")
	}
}

func TestSnapshot_SortedTopics(t *testing.T) {
	tracker := NewTracker()
	tracker.Observe("b/b/b")
	tracker.Observe("a/a/a")
	tracker.Observe("c/c/c")

	got := tracker.Snapshot().SortedTopics()
	want := []string{"a/a/a", "b/b/b", "c/c/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedTopics() = %v, want %v", got, want)
	}
}

func TestTracker_ConcurrentObserve(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.Observe("lidar/front/scans")
			}
		}()
	}
	wg.Wait()

	if got := tracker.Snapshot().Total; got != 1000 {
		t.Errorf("Total = %d, want 1000", got)
	}
}
