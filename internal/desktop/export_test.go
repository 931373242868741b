package desktop

// SetThreadLocking swaps the OS thread lock hooks and returns a restore func
func SetThreadLocking(lock, unlock func()) func() {
	origLock, origUnlock := lockOSThread, unlockOSThread
	lockOSThread, unlockOSThread = lock, unlock

	return func() {
		lockOSThread, unlockOSThread = origLock, origUnlock
	}
}
