package queue

const keyPrefix = "hintr:"

const (
	WorkerIDKey   = keyPrefix + "worker:id"
	WorkerTaskKey = keyPrefix + "worker:task"
)

// QueueKey returns the list holding pending job tokens for a queue.
func QueueKey(name string) string {
	return keyPrefix + "queue:" + name
}
