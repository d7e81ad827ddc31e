package kafka

// GracefulShutdown signals any in-flight Consume/ConsumeParallel loops to
// stop and closes the underlying writer/reader. Safe to call more than
// once.
func (k *KafkaClient) GracefulShutdown() error {
	k.closeShutdownOnce.Do(func() {
		close(k.shutdownSignal)
	})

	k.mu.Lock()
	defer k.mu.Unlock()

	var err error
	if k.writer != nil {
		if cerr := k.writer.Close(); cerr != nil {
			err = cerr
		}
	}
	if k.reader != nil {
		if cerr := k.reader.Close(); cerr != nil {
			err = cerr
		}
	}
	return err
}

// Close is an alias for GracefulShutdown, matching the io.Closer
// convention used in package examples.
func (k *KafkaClient) Close() error {
	return k.GracefulShutdown()
}
